// Package mapping loads the username mapping workbook (Usernames.xlsx).
//
// excelize returns every cell as its formatted string, so numeric identifiers and
// names are compared and written exactly as they appear in the sheet.
package mapping
