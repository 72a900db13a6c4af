// Package expand implements the placeholder pipeline behind tplgen.
//
// A template is scanned for {{name}} placeholders, the extracted names are
// reconciled against previously entered variables, each variable's raw values
// are split on a delimiter, the value counts are checked for consistency and
// finally the template is expanded into one output row per value index.
//
// Every function in this package is pure: identical inputs always produce
// identical outputs and no state is kept between calls.
package expand
