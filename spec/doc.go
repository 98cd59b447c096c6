// Package spec implements the elucidator specification language: the
// textual grammar that maps a designation to an ordered list of typed
// members, and the parser that turns spec text into a validated
// Specification.
//
// # Grammar
//
//	spec          := designation '(' members ')' ( '(' context ')' )? ';'?
//	designation   := IDENT
//	members       := member ( ',' member )*
//	member        := IDENT ':' dtype
//	dtype         := TYPENAME array_suffix?
//	array_suffix  := '[' ']'              // dynamic
//	               | '[' UINT_LITERAL ']' // fixed, > 0
//	TYPENAME      := u8|u16|u32|u64|i8|i16|i32|i64|f32|f64|string
//	IDENT         := [A-Za-z][A-Za-z0-9_]*
//
// A reduced form, a bare member list with no surrounding designation
// (`IDENT : DTYPE (, IDENT : DTYPE)*`), is also accepted by ParseMembers
// for callers that already know the designation out of band.
//
// The parser is total: every input string produces exactly one of a valid
// *Specification or a single *ParseError carrying a byte offset and the
// offending lexeme. It never returns a partially built specification.
package spec
