// Package template compiles progtmpl template strings into an ordered list
// of parts.
//
// # Syntax
//
// A template is literal text with placeholders in braces:
//
//	{key}                       plain substitution
//	{key:>10}                   right aligned in a 10 column cell
//	{key:^10!}                  centered, cut to 10 columns when longer
//	{key!}                      truncation flag without alignment
//	{key:<8.red.on_blue}        style applied to the cell
//	{key:red/green.on_cyan}     style and alternate style
//
// The format after ':' is, in order: an optional alignment ('<' left, '^'
// center, '>' right), optional width digits, an optional '!' truncation
// flag, then '.' and a dotted style, then '/' and a dotted alternate style.
// Style text may also follow ':' directly. Styles are decoded with
// style.Decode.
//
// Doubled braces escape themselves: "{{" is a literal '{' and "}}" a literal
// '}'. A lone '}' is kept as literal text.
//
// # Degradation
//
// Malformed input never fails. Whitespace where a key is expected turns the
// attempt back into literal text ("{ foo}" stays "{ foo}"), as do "{}" and
// "{:". An unterminated placeholder at the end of the input is emitted as
// literal text. A width that does not fit 16 bits is ignored.
//
// # Parts
//
// Compilation produces Literal, Placeholder and NewLine parts. Every '\n'
// in the input becomes a NewLine part of its own so renderers can reason
// about line boundaries without rescanning literal text.
//
// # Limits
//
// Parse is unbounded. Compile takes Limits on the part count, the scan
// buffer and the key length; exceeding one is reported as a
// CAPACITY_EXCEEDED error instead of truncating output.
package template
