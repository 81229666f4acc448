package ast

// Flags carries per-variant modifiers that do not warrant their own child.
type Flags uint32

const (
	FlagVar Flags = 1 << iota
	FlagLet
	FlagConst
	FlagUsing
	FlagAsync
	FlagGenerator
	FlagExpressionBody // arrow function with an expression body
	FlagComputed
	FlagShorthand
	FlagMethod
	FlagGetter
	FlagSetter
	FlagConstructor
	FlagStatic
	FlagOptional // `?.` on member or call
	FlagPrefix   // prefix update expression
	FlagDelegate // yield*
	FlagTrue     // boolean literal value
	FlagAwait    // for await
	FlagSelfClosing
	FlagModule // program is an ES module
	FlagTypeOnly
	FlagDeclare
	FlagTypeScript // program was parsed with a TypeScript grammar
	FlagJSX        // program was parsed with JSX enabled

	FlagDeclKindMask = FlagVar | FlagLet | FlagConst | FlagUsing
)

func (f Flags) Has(flag Flags) bool { return f&flag != 0 }
