package presenter

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillpulse/pkg/contracts/domain"
)

func TestConsolePresenter_Present(t *testing.T) {
	var buf bytes.Buffer
	p := NewConsolePresenter(&buf, nil)

	require.NoError(t, p.Present(context.Background(), allViews()))
	out := buf.String()

	for _, q := range domain.AllQuestions {
		assert.Equal(t, 1, strings.Count(out, q.Title()), q)
	}
	assert.Contains(t, out, "Postings per job title")
	assert.Contains(t, out, "Median Salary")
	assert.Contains(t, out, "1,200")
	assert.Contains(t, out, "$120,000")
	assert.Contains(t, out, "70.0%")
	assert.Contains(t, out, "analyst_tools")
}

func TestConsolePresenter_EmptyTable(t *testing.T) {
	var buf bytes.Buffer
	views := []View{{Question: domain.QuestionOptimal, Table: NewTable("empty", "Nothing here", Text("skill"))}}

	require.NoError(t, NewConsolePresenter(&buf, nil).Present(context.Background(), views))
	assert.Contains(t, buf.String(), "(no rows)")
}

func TestConsolePresenter_FormatCell(t *testing.T) {
	p := NewConsolePresenter(&bytes.Buffer{}, nil)

	tests := []struct {
		kind ColumnKind
		cell any
		want string
	}{
		{KindText, "sql", "sql"},
		{KindInteger, 12345, "12,345"},
		{KindPercent, 12.345, "12.3%"},
		{KindCurrency, 98500.4, "$98,500"},
		{KindInteger, "n/a", "n/a"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, p.FormatCell(tt.kind, tt.cell))
	}
}
