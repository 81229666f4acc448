package ast

// Category is the narrower view of a node that consumers dispatch on, so a
// rule asking "is this a declaration?" does not re-derive it from the kind.
type Category uint8

const (
	CategoryOther Category = iota
	CategoryStatement
	CategoryDeclaration
	CategoryModuleDeclaration
	CategoryExpression
	CategoryLiteral
	CategoryFunction
	CategoryClass
	CategoryPattern
	CategoryJSX
	CategoryTypeScript
)

func (c Category) String() string {
	switch c {
	case CategoryStatement:
		return "statement"
	case CategoryDeclaration:
		return "declaration"
	case CategoryModuleDeclaration:
		return "module-declaration"
	case CategoryExpression:
		return "expression"
	case CategoryLiteral:
		return "literal"
	case CategoryFunction:
		return "function"
	case CategoryClass:
		return "class"
	case CategoryPattern:
		return "pattern"
	case CategoryJSX:
		return "jsx"
	case CategoryTypeScript:
		return "typescript"
	default:
		return "other"
	}
}
