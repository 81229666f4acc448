package ast

type kindInfo struct {
	name     string
	category Category
	slots    []Slot // fixed children, in visiting order
	tail     string // name of the variadic tail that follows the fixed slots; "" if none
	scope    bool
}

func fixed(slots ...Slot) []Slot { return slots }

var (
	fnSlots    = fixed(SlotID, SlotTypeParams, SlotParams, SlotReturnType, SlotBody)
	classSlots = fixed(SlotID, SlotTypeParams, SlotSuperClass, SlotBody)
)

var kindTable = [KindCount]kindInfo{
	KindInvalid: {name: "Invalid"},

	KindProgram:   {name: "Program", tail: "body", scope: true},
	KindHashbang:  {name: "Hashbang"},
	KindDirective: {name: "Directive", category: CategoryStatement},

	KindBlockStatement:      {name: "BlockStatement", category: CategoryStatement, tail: "body", scope: true},
	KindEmptyStatement:      {name: "EmptyStatement", category: CategoryStatement},
	KindExpressionStatement: {name: "ExpressionStatement", category: CategoryStatement, slots: fixed(SlotExpression)},
	KindIfStatement:         {name: "IfStatement", category: CategoryStatement, slots: fixed(SlotTest, SlotConsequent, SlotAlternate)},
	KindForStatement:        {name: "ForStatement", category: CategoryStatement, slots: fixed(SlotInit, SlotTest, SlotUpdate, SlotBody), scope: true},
	KindForInStatement:      {name: "ForInStatement", category: CategoryStatement, slots: fixed(SlotLeft, SlotRight, SlotBody), scope: true},
	KindForOfStatement:      {name: "ForOfStatement", category: CategoryStatement, slots: fixed(SlotLeft, SlotRight, SlotBody), scope: true},
	KindWhileStatement:      {name: "WhileStatement", category: CategoryStatement, slots: fixed(SlotTest, SlotBody)},
	KindDoWhileStatement:    {name: "DoWhileStatement", category: CategoryStatement, slots: fixed(SlotBody, SlotTest)},
	KindReturnStatement:     {name: "ReturnStatement", category: CategoryStatement, slots: fixed(SlotArgument)},
	KindBreakStatement:      {name: "BreakStatement", category: CategoryStatement, slots: fixed(SlotLabel)},
	KindContinueStatement:   {name: "ContinueStatement", category: CategoryStatement, slots: fixed(SlotLabel)},
	KindThrowStatement:      {name: "ThrowStatement", category: CategoryStatement, slots: fixed(SlotArgument)},
	KindTryStatement:        {name: "TryStatement", category: CategoryStatement, slots: fixed(SlotBlock, SlotHandler, SlotFinalizer)},
	KindCatchClause:         {name: "CatchClause", slots: fixed(SlotParam, SlotBody), scope: true},
	KindSwitchStatement:     {name: "SwitchStatement", category: CategoryStatement, slots: fixed(SlotDiscriminant), tail: "cases", scope: true},
	KindSwitchCase:          {name: "SwitchCase", slots: fixed(SlotTest), tail: "consequent"},
	KindLabeledStatement:    {name: "LabeledStatement", category: CategoryStatement, slots: fixed(SlotLabel, SlotBody)},
	KindWithStatement:       {name: "WithStatement", category: CategoryStatement, slots: fixed(SlotObject, SlotBody)},
	KindDebuggerStatement:   {name: "DebuggerStatement", category: CategoryStatement},

	KindVariableDeclaration: {name: "VariableDeclaration", category: CategoryDeclaration, tail: "declarations"},
	KindVariableDeclarator:  {name: "VariableDeclarator", slots: fixed(SlotID, SlotInit)},
	KindFunctionDeclaration: {name: "FunctionDeclaration", category: CategoryFunction, slots: fnSlots, scope: true},
	KindClassDeclaration:    {name: "ClassDeclaration", category: CategoryClass, slots: classSlots, scope: true},

	KindFunctionExpression:      {name: "FunctionExpression", category: CategoryFunction, slots: fnSlots, scope: true},
	KindArrowFunctionExpression: {name: "ArrowFunctionExpression", category: CategoryFunction, slots: fixed(SlotTypeParams, SlotParams, SlotReturnType, SlotBody), scope: true},
	KindFormalParameters:        {name: "FormalParameters", tail: "items"},
	KindFormalParameter:         {name: "FormalParameter", slots: fixed(SlotPattern)},
	KindFunctionBody:            {name: "FunctionBody", tail: "statements"},

	KindClassExpression:    {name: "ClassExpression", category: CategoryClass, slots: classSlots, scope: true},
	KindClassBody:          {name: "ClassBody", tail: "body"},
	KindMethodDefinition:   {name: "MethodDefinition", slots: fixed(SlotKey, SlotValue)},
	KindPropertyDefinition: {name: "PropertyDefinition", slots: fixed(SlotKey, SlotTypeAnnotation, SlotValue)},
	KindAccessorProperty:   {name: "AccessorProperty", slots: fixed(SlotKey, SlotValue)},
	KindStaticBlock:        {name: "StaticBlock", tail: "body", scope: true},
	KindPrivateIdentifier:  {name: "PrivateIdentifier"},
	KindDecorator:          {name: "Decorator", slots: fixed(SlotExpression)},

	KindImportDeclaration:        {name: "ImportDeclaration", category: CategoryModuleDeclaration, slots: fixed(SlotSource), tail: "specifiers"},
	KindImportSpecifier:          {name: "ImportSpecifier", slots: fixed(SlotImported, SlotLocal)},
	KindImportDefaultSpecifier:   {name: "ImportDefaultSpecifier", slots: fixed(SlotLocal)},
	KindImportNamespaceSpecifier: {name: "ImportNamespaceSpecifier", slots: fixed(SlotLocal)},
	KindExportNamedDeclaration:   {name: "ExportNamedDeclaration", category: CategoryModuleDeclaration, slots: fixed(SlotDeclaration, SlotSource), tail: "specifiers"},
	KindExportDefaultDeclaration: {name: "ExportDefaultDeclaration", category: CategoryModuleDeclaration, slots: fixed(SlotDeclaration)},
	KindExportAllDeclaration:     {name: "ExportAllDeclaration", category: CategoryModuleDeclaration, slots: fixed(SlotExported, SlotSource)},
	KindExportSpecifier:          {name: "ExportSpecifier", slots: fixed(SlotLocal, SlotExported)},

	KindIdentifierReference: {name: "IdentifierReference", category: CategoryExpression},
	KindBindingIdentifier:   {name: "BindingIdentifier", category: CategoryPattern},
	KindIdentifierName:      {name: "IdentifierName"},
	KindLabelIdentifier:     {name: "LabelIdentifier"},

	KindNullLiteral:     {name: "NullLiteral", category: CategoryLiteral},
	KindBooleanLiteral:  {name: "BooleanLiteral", category: CategoryLiteral},
	KindNumericLiteral:  {name: "NumericLiteral", category: CategoryLiteral},
	KindBigIntLiteral:   {name: "BigIntLiteral", category: CategoryLiteral},
	KindStringLiteral:   {name: "StringLiteral", category: CategoryLiteral},
	KindRegExpLiteral:   {name: "RegExpLiteral", category: CategoryLiteral},
	KindTemplateLiteral: {name: "TemplateLiteral", category: CategoryExpression, tail: "parts"},
	KindTemplateElement: {name: "TemplateElement"},

	KindThisExpression:              {name: "ThisExpression", category: CategoryExpression},
	KindSuper:                       {name: "Super", category: CategoryExpression},
	KindArrayExpression:             {name: "ArrayExpression", category: CategoryExpression, tail: "elements"},
	KindElision:                     {name: "Elision"},
	KindObjectExpression:            {name: "ObjectExpression", category: CategoryExpression, tail: "properties"},
	KindObjectProperty:              {name: "ObjectProperty", slots: fixed(SlotKey, SlotValue)},
	KindSpreadElement:               {name: "SpreadElement", slots: fixed(SlotArgument)},
	KindTaggedTemplateExpression:    {name: "TaggedTemplateExpression", category: CategoryExpression, slots: fixed(SlotTag, SlotTypeArgs, SlotQuasi)},
	KindCallExpression:              {name: "CallExpression", category: CategoryExpression, slots: fixed(SlotCallee, SlotTypeArgs), tail: "arguments"},
	KindNewExpression:               {name: "NewExpression", category: CategoryExpression, slots: fixed(SlotCallee, SlotTypeArgs), tail: "arguments"},
	KindImportExpression:            {name: "ImportExpression", category: CategoryExpression, slots: fixed(SlotSource), tail: "options"},
	KindStaticMemberExpression:      {name: "StaticMemberExpression", category: CategoryExpression, slots: fixed(SlotObject, SlotProperty)},
	KindComputedMemberExpression:    {name: "ComputedMemberExpression", category: CategoryExpression, slots: fixed(SlotObject, SlotExpression)},
	KindPrivateFieldExpression:      {name: "PrivateFieldExpression", category: CategoryExpression, slots: fixed(SlotObject, SlotProperty)},
	KindChainExpression:             {name: "ChainExpression", category: CategoryExpression, slots: fixed(SlotExpression)},
	KindUnaryExpression:             {name: "UnaryExpression", category: CategoryExpression, slots: fixed(SlotArgument)},
	KindUpdateExpression:            {name: "UpdateExpression", category: CategoryExpression, slots: fixed(SlotArgument)},
	KindBinaryExpression:            {name: "BinaryExpression", category: CategoryExpression, slots: fixed(SlotLeft, SlotRight)},
	KindPrivateInExpression:         {name: "PrivateInExpression", category: CategoryExpression, slots: fixed(SlotLeft, SlotRight)},
	KindLogicalExpression:           {name: "LogicalExpression", category: CategoryExpression, slots: fixed(SlotLeft, SlotRight)},
	KindConditionalExpression:       {name: "ConditionalExpression", category: CategoryExpression, slots: fixed(SlotTest, SlotConsequent, SlotAlternate)},
	KindAssignmentExpression:        {name: "AssignmentExpression", category: CategoryExpression, slots: fixed(SlotLeft, SlotRight)},
	KindSequenceExpression:          {name: "SequenceExpression", category: CategoryExpression, tail: "expressions"},
	KindParenthesizedExpression:     {name: "ParenthesizedExpression", category: CategoryExpression, slots: fixed(SlotExpression)},
	KindAwaitExpression:             {name: "AwaitExpression", category: CategoryExpression, slots: fixed(SlotArgument)},
	KindYieldExpression:             {name: "YieldExpression", category: CategoryExpression, slots: fixed(SlotArgument)},
	KindMetaProperty:                {name: "MetaProperty", category: CategoryExpression, slots: fixed(SlotMeta, SlotProperty)},
	KindObjectPattern:               {name: "ObjectPattern", category: CategoryPattern, tail: "properties"},
	KindBindingProperty:             {name: "BindingProperty", category: CategoryPattern, slots: fixed(SlotKey, SlotValue)},
	KindArrayPattern:                {name: "ArrayPattern", category: CategoryPattern, tail: "elements"},
	KindAssignmentPattern:           {name: "AssignmentPattern", category: CategoryPattern, slots: fixed(SlotLeft, SlotRight)},
	KindRestElement:                 {name: "RestElement", category: CategoryPattern, slots: fixed(SlotArgument)},
	KindArrayAssignmentTarget:       {name: "ArrayAssignmentTarget", category: CategoryPattern, tail: "elements"},
	KindObjectAssignmentTarget:      {name: "ObjectAssignmentTarget", category: CategoryPattern, tail: "properties"},
	KindAssignmentTargetWithDefault: {name: "AssignmentTargetWithDefault", category: CategoryPattern, slots: fixed(SlotLeft, SlotRight)},
	KindAssignmentTargetPropertyIdentifier: {
		name: "AssignmentTargetPropertyIdentifier", category: CategoryPattern, slots: fixed(SlotName, SlotInit),
	},
	KindAssignmentTargetPropertyProperty: {
		name: "AssignmentTargetPropertyProperty", category: CategoryPattern, slots: fixed(SlotKey, SlotValue),
	},
	KindAssignmentTargetRest: {name: "AssignmentTargetRest", category: CategoryPattern, slots: fixed(SlotArgument)},

	KindJSXElement:             {name: "JSXElement", category: CategoryJSX, slots: fixed(SlotOpening, SlotClosing), tail: "children"},
	KindJSXOpeningElement:      {name: "JSXOpeningElement", category: CategoryJSX, slots: fixed(SlotName, SlotTypeArgs), tail: "attributes"},
	KindJSXClosingElement:      {name: "JSXClosingElement", category: CategoryJSX, slots: fixed(SlotName)},
	KindJSXFragment:            {name: "JSXFragment", category: CategoryJSX, tail: "children"},
	KindJSXAttribute:           {name: "JSXAttribute", category: CategoryJSX, slots: fixed(SlotName, SlotValue)},
	KindJSXSpreadAttribute:     {name: "JSXSpreadAttribute", category: CategoryJSX, slots: fixed(SlotArgument)},
	KindJSXExpressionContainer: {name: "JSXExpressionContainer", category: CategoryJSX, slots: fixed(SlotExpression)},
	KindJSXEmptyExpression:     {name: "JSXEmptyExpression", category: CategoryJSX},
	KindJSXText:                {name: "JSXText", category: CategoryJSX},
	KindJSXIdentifier:          {name: "JSXIdentifier", category: CategoryJSX},
	KindJSXMemberExpression:    {name: "JSXMemberExpression", category: CategoryJSX, slots: fixed(SlotObject, SlotProperty)},
	KindJSXNamespacedName:      {name: "JSXNamespacedName", category: CategoryJSX, slots: fixed(SlotNamespace, SlotName)},
	KindJSXSpreadChild:         {name: "JSXSpreadChild", category: CategoryJSX, slots: fixed(SlotExpression)},

	KindTSTypeAnnotation:             {name: "TSTypeAnnotation", category: CategoryTypeScript},
	KindTSTypeParameterDeclaration:   {name: "TSTypeParameterDeclaration", category: CategoryTypeScript},
	KindTSTypeParameterInstantiation: {name: "TSTypeParameterInstantiation", category: CategoryTypeScript},
	KindTSAsExpression:               {name: "TSAsExpression", category: CategoryExpression, slots: fixed(SlotExpression, SlotTypeAnnotation)},
	KindTSSatisfiesExpression:        {name: "TSSatisfiesExpression", category: CategoryExpression, slots: fixed(SlotExpression, SlotTypeAnnotation)},
	KindTSNonNullExpression:          {name: "TSNonNullExpression", category: CategoryExpression, slots: fixed(SlotExpression)},
	KindTSTypeAssertion:              {name: "TSTypeAssertion", category: CategoryExpression, slots: fixed(SlotTypeAnnotation, SlotExpression)},
	KindTSInstantiationExpression:    {name: "TSInstantiationExpression", category: CategoryExpression, slots: fixed(SlotExpression, SlotTypeArgs)},
	KindTSInterfaceDeclaration:       {name: "TSInterfaceDeclaration", category: CategoryDeclaration, slots: fixed(SlotID, SlotTypeParams)},
	KindTSTypeAliasDeclaration:       {name: "TSTypeAliasDeclaration", category: CategoryDeclaration, slots: fixed(SlotID, SlotTypeParams, SlotTypeAnnotation)},
	KindTSEnumDeclaration:            {name: "TSEnumDeclaration", category: CategoryDeclaration, slots: fixed(SlotID), tail: "members"},
	KindTSEnumMember:                 {name: "TSEnumMember", category: CategoryTypeScript, slots: fixed(SlotID, SlotInit)},
	KindTSModuleDeclaration:          {name: "TSModuleDeclaration", category: CategoryDeclaration, slots: fixed(SlotID, SlotBody), scope: true},
	KindTSModuleBlock:                {name: "TSModuleBlock", category: CategoryTypeScript, tail: "body"},
	KindTSDeclareFunction:            {name: "TSDeclareFunction", category: CategoryDeclaration, slots: fixed(SlotID, SlotTypeParams, SlotParams, SlotReturnType)},
	KindTSImportEqualsDeclaration:    {name: "TSImportEqualsDeclaration", category: CategoryDeclaration, slots: fixed(SlotID, SlotValue)},
	KindTSExternalModuleReference:    {name: "TSExternalModuleReference", category: CategoryTypeScript, slots: fixed(SlotExpression)},
	KindTSExportAssignment:           {name: "TSExportAssignment", category: CategoryModuleDeclaration, slots: fixed(SlotExpression)},
	KindTSNamespaceExportDeclaration: {name: "TSNamespaceExportDeclaration", category: CategoryModuleDeclaration, slots: fixed(SlotID)},
	KindTSParameterProperty:          {name: "TSParameterProperty", category: CategoryTypeScript, slots: fixed(SlotPattern)},
	KindTSIndexSignature:             {name: "TSIndexSignature", category: CategoryTypeScript},
	KindTSAbstractMethodDefinition:   {name: "TSAbstractMethodDefinition", category: CategoryTypeScript, slots: fixed(SlotKey)},

	KindUnknown: {name: "Unknown", tail: "children"},
}

// slotIndex[k][slot] is the position of slot in Kids for kind k, or -1.
var slotIndex = func() (idx [KindCount][SlotCount]int8) {
	for k := range idx {
		for sl := range idx[k] {
			idx[k][sl] = -1
		}
		for i, sl := range kindTable[k].slots {
			idx[k][sl] = int8(i)
		}
	}
	return idx
}()

// FixedSlots returns the ordered fixed slots of k.
func (k Kind) FixedSlots() []Slot {
	if k >= KindCount {
		return nil
	}
	return kindTable[k].slots
}

// HasTail reports whether k carries a variadic child list after its fixed slots.
func (k Kind) HasTail() bool {
	return k < KindCount && kindTable[k].tail != ""
}

// TailName names the variadic child list of k ("" when it has none).
func (k Kind) TailName() string {
	if k >= KindCount {
		return ""
	}
	return kindTable[k].tail
}
