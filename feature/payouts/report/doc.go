// Package report writes the two payout artifacts.
//
//   - A per-source CSV named {prefix}Users_{YYYY-MM-DD_HH-MM-SS}.csv with rows
//     "displayName,score", no header, CRLF line endings.
//   - A consolidated NEWNAMES.xlsx with sheet "New Names", header "Unmatched
//     Usernames" in A1 and one unmatched identifier per row below it.
//
// Both return the path they wrote and wrap failures in ErrWrite. Two writes of the
// same prefix within one second target the same file and the last one wins.
package report
