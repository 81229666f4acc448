package ast

// Kind identifies a syntax node variant. The set is closed: every value below
// KindCount has a row in kindTable.
type Kind uint8

const (
	KindInvalid Kind = iota

	// program
	KindProgram
	KindHashbang
	KindDirective

	// statements
	KindBlockStatement
	KindEmptyStatement
	KindExpressionStatement
	KindIfStatement
	KindForStatement
	KindForInStatement
	KindForOfStatement
	KindWhileStatement
	KindDoWhileStatement
	KindReturnStatement
	KindBreakStatement
	KindContinueStatement
	KindThrowStatement
	KindTryStatement
	KindCatchClause
	KindSwitchStatement
	KindSwitchCase
	KindLabeledStatement
	KindWithStatement
	KindDebuggerStatement

	// declarations
	KindVariableDeclaration
	KindVariableDeclarator
	KindFunctionDeclaration
	KindClassDeclaration

	// functions
	KindFunctionExpression
	KindArrowFunctionExpression
	KindFormalParameters
	KindFormalParameter
	KindFunctionBody

	// classes
	KindClassExpression
	KindClassBody
	KindMethodDefinition
	KindPropertyDefinition
	KindAccessorProperty
	KindStaticBlock
	KindPrivateIdentifier
	KindDecorator

	// modules
	KindImportDeclaration
	KindImportSpecifier
	KindImportDefaultSpecifier
	KindImportNamespaceSpecifier
	KindExportNamedDeclaration
	KindExportDefaultDeclaration
	KindExportAllDeclaration
	KindExportSpecifier

	// identifiers
	KindIdentifierReference
	KindBindingIdentifier
	KindIdentifierName
	KindLabelIdentifier

	// literals
	KindNullLiteral
	KindBooleanLiteral
	KindNumericLiteral
	KindBigIntLiteral
	KindStringLiteral
	KindRegExpLiteral
	KindTemplateLiteral
	KindTemplateElement

	// expressions
	KindThisExpression
	KindSuper
	KindArrayExpression
	KindElision
	KindObjectExpression
	KindObjectProperty
	KindSpreadElement
	KindTaggedTemplateExpression
	KindCallExpression
	KindNewExpression
	KindImportExpression
	KindStaticMemberExpression
	KindComputedMemberExpression
	KindPrivateFieldExpression
	KindChainExpression
	KindUnaryExpression
	KindUpdateExpression
	KindBinaryExpression
	KindPrivateInExpression
	KindLogicalExpression
	KindConditionalExpression
	KindAssignmentExpression
	KindSequenceExpression
	KindParenthesizedExpression
	KindAwaitExpression
	KindYieldExpression
	KindMetaProperty

	// binding patterns
	KindObjectPattern
	KindBindingProperty
	KindArrayPattern
	KindAssignmentPattern
	KindRestElement

	// assignment targets
	KindArrayAssignmentTarget
	KindObjectAssignmentTarget
	KindAssignmentTargetWithDefault
	KindAssignmentTargetPropertyIdentifier
	KindAssignmentTargetPropertyProperty
	KindAssignmentTargetRest

	// JSX
	KindJSXElement
	KindJSXOpeningElement
	KindJSXClosingElement
	KindJSXFragment
	KindJSXAttribute
	KindJSXSpreadAttribute
	KindJSXExpressionContainer
	KindJSXEmptyExpression
	KindJSXText
	KindJSXIdentifier
	KindJSXMemberExpression
	KindJSXNamespacedName
	KindJSXSpreadChild

	// TypeScript
	KindTSTypeAnnotation
	KindTSTypeParameterDeclaration
	KindTSTypeParameterInstantiation
	KindTSAsExpression
	KindTSSatisfiesExpression
	KindTSNonNullExpression
	KindTSTypeAssertion
	KindTSInstantiationExpression
	KindTSInterfaceDeclaration
	KindTSTypeAliasDeclaration
	KindTSEnumDeclaration
	KindTSEnumMember
	KindTSModuleDeclaration
	KindTSModuleBlock
	KindTSDeclareFunction
	KindTSImportEqualsDeclaration
	KindTSExternalModuleReference
	KindTSExportAssignment
	KindTSNamespaceExportDeclaration
	KindTSParameterProperty
	KindTSIndexSignature
	KindTSAbstractMethodDefinition

	// Unknown holds CST constructs the lowering does not model; its children are
	// still lowered so nothing underneath is lost to the walk.
	KindUnknown

	KindCount
)

func (k Kind) String() string {
	if k < KindCount && kindTable[k].name != "" {
		return kindTable[k].name
	}
	return "Kind(?)"
}

// Category returns the normalized class of k.
func (k Kind) Category() Category {
	if k >= KindCount {
		return CategoryOther
	}
	return kindTable[k].category
}

// IsScope reports whether nodes of kind k introduce a lexical scope.
func (k Kind) IsScope() bool {
	return k < KindCount && kindTable[k].scope
}

// IsFunction reports whether k is a function-like node with parameters and a body.
func (k Kind) IsFunction() bool {
	switch k {
	case KindFunctionDeclaration, KindFunctionExpression, KindArrowFunctionExpression:
		return true
	}
	return false
}

// IsMemberExpression covers the three member access forms.
func (k Kind) IsMemberExpression() bool {
	switch k {
	case KindStaticMemberExpression, KindComputedMemberExpression, KindPrivateFieldExpression:
		return true
	}
	return false
}

// IsLiteral reports primitive literal kinds (templates excluded).
func (k Kind) IsLiteral() bool {
	switch k {
	case KindNullLiteral, KindBooleanLiteral, KindNumericLiteral, KindBigIntLiteral, KindStringLiteral, KindRegExpLiteral:
		return true
	}
	return false
}

// Kinds returns every valid kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, KindCount-1)
	for k := KindInvalid + 1; k < KindCount; k++ {
		out = append(out, k)
	}
	return out
}

// KindByName looks a kind up by its String form.
func KindByName(name string) (Kind, bool) {
	k, ok := kindsByName[name]
	return k, ok
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, KindCount)
	for k := KindInvalid + 1; k < KindCount; k++ {
		m[kindTable[k].name] = k
	}
	return m
}()
