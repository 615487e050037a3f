// Package viz renders comparison results in the terminal.
//
//   - [Chart]: asciigraph overlay of y against sample index, one colored
//     series per method, with legends
//   - [Plot] / [PlotXY]: Braille [Canvas] on true x/y axes; RK4 is drawn
//     as a connected line and Euler as markers
//   - [SummaryTable], [Legend], [MetricsLine]: lipgloss-styled text
//
// Colors come from a [Theme]; "classic" draws Euler in red and RK4 in
// blue.
package viz
