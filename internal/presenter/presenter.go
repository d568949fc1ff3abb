package presenter

import (
	"context"

	"skillpulse/pkg/contracts/domain"
)

// View is one table of a question's answer, optionally drawn as a chart
type View struct {
	Question domain.Question
	Table    *Table
	Chart    *ChartSpec
}

// Presenter renders views to some output
type Presenter interface {
	Present(ctx context.Context, views []View) error
}
