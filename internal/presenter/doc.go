// Package presenter turns analysis results into tables and charts.
//
// View builders map each question's result onto named tables with an
// optional chart declaration. Presenters render a list of views: the
// workbook presenter writes an XLSX file with native charts, the console
// presenter prints aligned text tables.
package presenter
