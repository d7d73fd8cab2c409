/*
Package langdef converts textual grammar description to validated grammar.Grammar structure.

Grammar is described using compact rule notation. Self-definition of this notation is:
*/
//  $space = /\s+/; $comment = /\/\/[^\n]*/;      // "///" doc comments are comments too
//  $directive = /->|\|>/; $end = /\$/;
//  $quoted = /'(?:[^'\\\n]|\\.)*'|"(?:[^"\\\n]|\\.)*"/;
//  $name = /[A-Za-z_][^\s$]*/;                     // binary_expr_<< is a single name
//  $op = longest punctuator of the profile;        // ( ) ; == **= <<= || ++ ...
//
//  grammar = declaration, {declaration};
//  declaration = $name, $directive, symbol, {symbol}, $end;
//  symbol = $name | $quoted | $op;
//
// "name -> a b c $" declares one ordered sequence production.
// "name |> a b c $" declares one single-symbol alternative per listed symbol,
// the list may span several lines. A rule may be declared several times,
// productions keep declaration order which is also the preference order
// for alternatives starting with the same token.
//
// "$" ends a name, so "a -> b$" is the same as "a -> b $".
//
// The name "e" stands for the empty alternative. A name not declared as a rule is
// a token class (id, ii, fi, si, bi) or a keyword of the profile, anything else is an error.
// The rule named "root_unit" is the root one, if there is no such rule the first declared rule is used.
//
// Sample:
//
//	expr -> expr binary_op+ term $
//	expr |> term $
//	term -> ( expr ) $
//	term |> id ii $
//	binary_op+ |> + - $
package langdef
