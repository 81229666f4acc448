package ast

// Slot names a fixed child position. Each kind declares the ordered slots it
// uses; Node.Kids stores them in that order, followed by the variadic tail.
type Slot uint8

const (
	SlotNone Slot = iota
	SlotID
	SlotTypeParams
	SlotParams
	SlotReturnType
	SlotBody
	SlotTest
	SlotConsequent
	SlotAlternate
	SlotInit
	SlotUpdate
	SlotLeft
	SlotRight
	SlotObject
	SlotProperty
	SlotCallee
	SlotTypeArgs
	SlotArgument
	SlotExpression
	SlotKey
	SlotValue
	SlotSuperClass
	SlotBlock
	SlotHandler
	SlotFinalizer
	SlotParam
	SlotLabel
	SlotDiscriminant
	SlotTag
	SlotQuasi
	SlotSource
	SlotDeclaration
	SlotLocal
	SlotExported
	SlotImported
	SlotTypeAnnotation
	SlotName
	SlotOpening
	SlotClosing
	SlotMeta
	SlotNamespace
	SlotPattern

	SlotCount
)

var slotNames = [SlotCount]string{
	SlotNone:           "none",
	SlotID:             "id",
	SlotTypeParams:     "typeParameters",
	SlotParams:         "params",
	SlotReturnType:     "returnType",
	SlotBody:           "body",
	SlotTest:           "test",
	SlotConsequent:     "consequent",
	SlotAlternate:      "alternate",
	SlotInit:           "init",
	SlotUpdate:         "update",
	SlotLeft:           "left",
	SlotRight:          "right",
	SlotObject:         "object",
	SlotProperty:       "property",
	SlotCallee:         "callee",
	SlotTypeArgs:       "typeArguments",
	SlotArgument:       "argument",
	SlotExpression:     "expression",
	SlotKey:            "key",
	SlotValue:          "value",
	SlotSuperClass:     "superClass",
	SlotBlock:          "block",
	SlotHandler:        "handler",
	SlotFinalizer:      "finalizer",
	SlotParam:          "param",
	SlotLabel:          "label",
	SlotDiscriminant:   "discriminant",
	SlotTag:            "tag",
	SlotQuasi:          "quasi",
	SlotSource:         "source",
	SlotDeclaration:    "declaration",
	SlotLocal:          "local",
	SlotExported:       "exported",
	SlotImported:       "imported",
	SlotTypeAnnotation: "typeAnnotation",
	SlotName:           "name",
	SlotOpening:        "openingElement",
	SlotClosing:        "closingElement",
	SlotMeta:           "meta",
	SlotNamespace:      "namespace",
	SlotPattern:        "pattern",
}

func (s Slot) String() string {
	if s < SlotCount {
		return slotNames[s]
	}
	return "slot(?)"
}
