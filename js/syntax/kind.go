package syntax

// Kind tags every token and every node the parser can produce.
//
// The numeric values are part of the contract with tree consumers. New kinds
// are appended to the end of their section's reserved block; existing values
// never move.
type Kind uint16

// Tokens occupy [0, lastToken]. They must stay below 256 so that TokenSet can
// represent any token set in four words.
const (
	Tombstone Kind = iota
	EOF

	// Punctuation
	TokenSemicolon
	TokenComma
	TokenLParen
	TokenRParen
	TokenLCurly
	TokenRCurly
	TokenLBrack
	TokenRBrack
	TokenLAngle
	TokenRAngle
	TokenTilde
	TokenQuestion
	TokenQuestion2
	TokenQuestionDot
	TokenAmp
	TokenPipe
	TokenPlus
	TokenPlus2
	TokenStar
	TokenStar2
	TokenSlash
	TokenCaret
	TokenPercent
	TokenDot
	TokenDot3
	TokenColon
	TokenEq
	TokenEq2
	TokenEq3
	TokenFatArrow
	TokenBang
	TokenNeq
	TokenNeq2
	TokenMinus
	TokenMinus2
	TokenLtEq
	TokenGtEq
	TokenPlusEq
	TokenMinusEq
	TokenPipeEq
	TokenAmpEq
	TokenCaretEq
	TokenSlashEq
	TokenStarEq
	TokenPercentEq
	TokenAmp2
	TokenPipe2
	TokenShl
	TokenShr
	TokenUShr
	TokenShlEq
	TokenShrEq
	TokenUShrEq
	TokenAmp2Eq
	TokenPipe2Eq
	TokenStar2Eq
	TokenQuestion2Eq
	TokenAt
	TokenBacktick
	TokenHash
)

// Reserved words.
const (
	KwBreak Kind = iota + 64
	KwCase
	KwCatch
	KwClass
	KwConst
	KwContinue
	KwDebugger
	KwDefault
	KwDelete
	KwDo
	KwElse
	KwEnum
	KwExport
	KwExtends
	KwFalse
	KwFinally
	KwFor
	KwFunction
	KwIf
	KwImport
	KwIn
	KwInstanceof
	KwNew
	KwNull
	KwReturn
	KwSuper
	KwSwitch
	KwThis
	KwThrow
	KwTrue
	KwTry
	KwTypeof
	KwVar
	KwVoid
	KwWhile
	KwWith

	// Reserved in strict mode only.
	KwImplements
	KwInterface
	KwLet
	KwPackage
	KwPrivate
	KwProtected
	KwPublic
	KwStatic
	KwYield

	// Contextual keywords; valid identifiers everywhere they are not keywords.
	KwAbstract
	KwAccessor
	KwAny
	KwAs
	KwAsserts
	KwAssert
	KwAsync
	KwAwait
	KwBigint
	KwBoolean
	KwConstructor
	KwDeclare
	KwFrom
	KwGet
	KwGlobal
	KwInfer
	KwIs
	KwKeyof
	KwModule
	KwNamespace
	KwNever
	KwNumber
	KwObject
	KwOf
	KwOut
	KwOverride
	KwReadonly
	KwRequire
	KwSatisfies
	KwSet
	KwString
	KwSymbol
	KwType
	KwUndefined
	KwUnique
	KwUnknown
	KwUsing
)

// Literals, identifiers and trivia.
const (
	TokenNumber Kind = iota + 160
	TokenBigInt
	TokenString
	TokenRegex
	TokenJsxText
	TokenJsxString
	TokenTemplateChunk
	TokenDollarCurly
	TokenIdent
	TokenJsxIdent
	TokenError

	TokenNewline
	TokenWhitespace
	TokenComment
	TokenMultilineComment
	TokenHashbang

	lastToken = TokenHashbang
)

const (
	firstKeyword           = KwBreak
	lastReservedKeyword    = KwWith
	firstStrictKeyword     = KwImplements
	lastStrictKeyword      = KwYield
	firstContextualKeyword = KwAbstract
	lastKeyword            = KwUsing
)

// Node kinds start at 256.
const (
	KindScript Kind = iota + 256
	KindModule
	KindExpressionSnippet

	// Bogus nodes wrap content that could not be parsed into a valid shape.
	KindBogus
	KindBogusStatement
	KindBogusExpression
	KindBogusMember
	KindBogusBinding
	KindBogusAssignment
	KindBogusParameter
	KindBogusType
	KindBogusImportSpecifier

	// Lists
	KindDirectiveList
	KindStatementList
	KindModuleItemList
	KindParameterList
	KindArgumentList
	KindArrayElementList
	KindObjectMemberList
	KindClassMemberList
	KindSwitchCaseList
	KindVariableDeclaratorList
	KindTemplateElementList
	KindModifierList
	KindDecoratorList
	KindImportSpecifierList
	KindExportSpecifierList
	KindArrayPatternElementList
	KindObjectPatternPropertyList
	KindTypeArgumentList
	KindTypeParameterList
	KindTypeMemberList
	KindTupleTypeElementList
	KindTypeList
	KindEnumMemberList
	KindJsxChildList
	KindJsxAttributeList
	KindTemplateTypeElementList
	KindImportAssertionEntryList
)

// Statements and declarations.
const (
	KindDirective Kind = iota + 320
	KindBlockStatement
	KindEmptyStatement
	KindExpressionStatement
	KindIfStatement
	KindElseClause
	KindForStatement
	KindForInStatement
	KindForOfStatement
	KindForVariableDeclaration
	KindWhileStatement
	KindDoWhileStatement
	KindReturnStatement
	KindBreakStatement
	KindContinueStatement
	KindThrowStatement
	KindTryStatement
	KindCatchClause
	KindCatchDeclaration
	KindFinallyClause
	KindSwitchStatement
	KindCaseClause
	KindDefaultClause
	KindLabeledStatement
	KindDebuggerStatement
	KindWithStatement
	KindVariableStatement
	KindVariableDeclaration
	KindVariableDeclarator
	KindInitializerClause
	KindFunctionDeclaration
	KindFunctionBody
	KindClassDeclaration
	KindLabel
)

// Expressions, names and assignment targets.
const (
	KindIdentifierExpression Kind = iota + 400
	KindReferenceIdentifier
	KindName
	KindPrivateName
	KindThisExpression
	KindSuperExpression
	KindNumberLiteralExpression
	KindBigIntLiteralExpression
	KindStringLiteralExpression
	KindBooleanLiteralExpression
	KindNullLiteralExpression
	KindRegexLiteralExpression
	KindArrayExpression
	KindArrayHole
	KindSpread
	KindObjectExpression
	KindPropertyObjectMember
	KindMethodObjectMember
	KindGetterObjectMember
	KindSetterObjectMember
	KindShorthandPropertyObjectMember
	KindLiteralMemberName
	KindComputedMemberName
	KindPrivateClassMemberName
	KindFunctionExpression
	KindArrowFunctionExpression
	KindClassExpression
	KindTemplateExpression
	KindTemplateChunkElement
	KindTemplateElement
	KindParenthesizedExpression
	KindSequenceExpression
	KindAssignmentExpression
	KindConditionalExpression
	KindBinaryExpression
	KindLogicalExpression
	KindInExpression
	KindInstanceofExpression
	KindUnaryExpression
	KindPreUpdateExpression
	KindPostUpdateExpression
	KindAwaitExpression
	KindYieldExpression
	KindYieldArgument
	KindNewExpression
	KindNewTargetExpression
	KindImportMetaExpression
	KindImportCallExpression
	KindCallExpression
	KindCallArguments
	KindStaticMemberExpression
	KindComputedMemberExpression
	KindAsExpression
	KindSatisfiesExpression
	KindNonNullAssertionExpression
	KindTypeAssertionExpression
	KindInstantiationExpression

	KindIdentifierAssignment
	KindStaticMemberAssignment
	KindComputedMemberAssignment
	KindParenthesizedAssignment
	KindArrayAssignmentPattern
	KindArrayAssignmentPatternRestElement
	KindAssignmentWithDefault
	KindObjectAssignmentPattern
	KindObjectAssignmentPatternProperty
	KindObjectAssignmentPatternShorthandProperty
	KindObjectAssignmentPatternRest
)

// Bindings, functions and classes.
const (
	KindIdentifierBinding Kind = iota + 480
	KindArrayBindingPattern
	KindBindingPatternWithDefault
	KindArrayBindingPatternRestElement
	KindObjectBindingPattern
	KindObjectBindingPatternProperty
	KindObjectBindingPatternShorthandProperty
	KindObjectBindingPatternRest

	KindParameters
	KindFormalParameter
	KindRestParameter
	KindThisParameter
	KindPropertyParameter
	KindDecorator

	KindExtendsClause
	KindImplementsClause
	KindConstructorClassMember
	KindMethodClassMember
	KindPropertyClassMember
	KindGetterClassMember
	KindSetterClassMember
	KindStaticInitializationBlock
	KindEmptyClassMember
	KindIndexSignatureClassMember
)

// Modules.
const (
	KindImport Kind = iota + 520
	KindImportBareClause
	KindImportDefaultClause
	KindImportNamespaceClause
	KindImportNamedClause
	KindNamedImportSpecifiers
	KindNamedImportSpecifier
	KindShorthandNamedImportSpecifier
	KindModuleSource
	KindImportAssertion
	KindImportAssertionEntry
	KindExport
	KindExportDefaultDeclaration
	KindExportDefaultExpression
	KindExportNamedClause
	KindExportNamedSpecifier
	KindExportFromClause
	KindExportNamedFromClause
	KindExportAsClause
	KindTsExportAssignment
	KindTsImportEqualsDeclaration
	KindTsExternalModuleReference
)

// TypeScript types and declarations.
const (
	KindTypeAnnotation Kind = iota + 560
	KindReturnTypeAnnotation
	KindTypeArguments
	KindTypeParameters
	KindTypeParameter
	KindTypeConstraint
	KindDefaultTypeClause
	KindAnyType
	KindUnknownType
	KindNumberType
	KindBooleanType
	KindBigintType
	KindStringType
	KindSymbolType
	KindVoidType
	KindUndefinedType
	KindNeverType
	KindNonPrimitiveType
	KindNullLiteralType
	KindThisType
	KindStringLiteralType
	KindNumberLiteralType
	KindBigIntLiteralType
	KindBooleanLiteralType
	KindTemplateLiteralType
	KindTemplateTypeElement
	KindReferenceType
	KindQualifiedName
	KindTypeofType
	KindTypeOperatorType
	KindArrayType
	KindIndexedAccessType
	KindTupleType
	KindNamedTupleTypeElement
	KindRestTupleTypeElement
	KindOptionalTupleTypeElement
	KindObjectType
	KindPropertySignatureTypeMember
	KindMethodSignatureTypeMember
	KindCallSignatureTypeMember
	KindConstructSignatureTypeMember
	KindGetterSignatureTypeMember
	KindSetterSignatureTypeMember
	KindIndexSignatureTypeMember
	KindIndexSignatureParameter
	KindMappedType
	KindMappedTypeAsClause
	KindFunctionType
	KindConstructorType
	KindUnionType
	KindIntersectionType
	KindConditionalType
	KindInferType
	KindParenthesizedType
	KindTypePredicate
	KindAssertsReturnType
	KindImportType

	KindInterfaceDeclaration
	KindInterfaceExtendsClause
	KindTypeAliasDeclaration
	KindEnumDeclaration
	KindEnumMember
	KindModuleDeclaration
	KindModuleBlock
	KindGlobalDeclaration
	KindDeclareStatement
	KindDeclareFunctionDeclaration
	KindDefiniteVariableAnnotation
)

// JSX.
const (
	KindJsxTagExpression Kind = iota + 660
	KindJsxElement
	KindJsxOpeningElement
	KindJsxClosingElement
	KindJsxSelfClosingElement
	KindJsxFragment
	KindJsxOpeningFragment
	KindJsxClosingFragment
	KindJsxName
	KindJsxReferenceIdentifier
	KindJsxNamespaceName
	KindJsxMemberName
	KindJsxAttribute
	KindJsxAttributeInitializer
	KindJsxSpreadAttribute
	KindJsxString
	KindJsxText
	KindJsxExpressionChild
	KindJsxSpreadChild
	KindJsxExpressionAttributeValue
)

// IsToken reports whether k is a token kind (including trivia).
func (k Kind) IsToken() bool {
	return k <= lastToken
}

// IsNode reports whether k tags an interior node.
func (k Kind) IsNode() bool {
	return k >= KindScript
}

func (k Kind) IsTrivia() bool {
	switch k {
	case TokenNewline, TokenWhitespace, TokenComment, TokenMultilineComment, TokenHashbang:
		return true
	}
	return false
}

func (k Kind) IsPunct() bool {
	return k >= TokenSemicolon && k <= TokenHash
}

func (k Kind) IsKeyword() bool {
	return k >= firstKeyword && k <= lastKeyword
}

// IsReservedKeyword reports whether k can never be used as an identifier.
func (k Kind) IsReservedKeyword() bool {
	return k >= firstKeyword && k <= lastReservedKeyword
}

// IsStrictReservedKeyword reports whether k is reserved only in strict mode.
func (k Kind) IsStrictReservedKeyword() bool {
	return k >= firstStrictKeyword && k <= lastStrictKeyword
}

func (k Kind) IsContextualKeyword() bool {
	return k >= firstContextualKeyword && k <= lastKeyword
}

func (k Kind) IsLiteral() bool {
	switch k {
	case TokenNumber, TokenBigInt, TokenString, TokenRegex, KwTrue, KwFalse, KwNull:
		return true
	}
	return false
}

func (k Kind) IsBogus() bool {
	return k >= KindBogus && k <= KindBogusImportSpecifier
}

func (k Kind) IsList() bool {
	return k >= KindDirectiveList && k <= KindImportAssertionEntryList
}

// ToBogus returns the bogus kind that best replaces k when its content turns
// out to be invalid.
func (k Kind) ToBogus() Kind {
	switch {
	case k.IsBogus():
		return k
	case k >= KindDirective && k <= KindLabel,
		k >= KindImport && k <= KindTsExternalModuleReference,
		k >= KindInterfaceDeclaration && k <= KindDefiniteVariableAnnotation:
		return KindBogusStatement
	case k >= KindIdentifierAssignment && k <= KindObjectAssignmentPatternRest:
		return KindBogusAssignment
	case k >= KindIdentifierExpression && k <= KindInstantiationExpression,
		k >= KindJsxTagExpression && k <= KindJsxExpressionAttributeValue:
		return KindBogusExpression
	case k >= KindIdentifierBinding && k <= KindObjectBindingPatternRest:
		return KindBogusBinding
	case k >= KindParameters && k <= KindDecorator:
		return KindBogusParameter
	case k >= KindExtendsClause && k <= KindIndexSignatureClassMember:
		return KindBogusMember
	case k >= KindTypeAnnotation && k <= KindImportType:
		return KindBogusType
	}
	return KindBogus
}
