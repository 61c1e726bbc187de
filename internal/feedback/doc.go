// Package feedback reshapes recorded measure feedback for display.
//
// Feedback rows have no fixed schema: columns are discovered from the rows
// themselves, one column is treated as the row date, and the remaining
// numeric columns become chart series. Every function here tolerates
// missing fields and values of unexpected types.
package feedback
