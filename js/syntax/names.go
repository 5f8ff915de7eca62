package syntax

import "strconv"

var keywords = map[string]Kind{
	"break":       KwBreak,
	"case":        KwCase,
	"catch":       KwCatch,
	"class":       KwClass,
	"const":       KwConst,
	"continue":    KwContinue,
	"debugger":    KwDebugger,
	"default":     KwDefault,
	"delete":      KwDelete,
	"do":          KwDo,
	"else":        KwElse,
	"enum":        KwEnum,
	"export":      KwExport,
	"extends":     KwExtends,
	"false":       KwFalse,
	"finally":     KwFinally,
	"for":         KwFor,
	"function":    KwFunction,
	"if":          KwIf,
	"import":      KwImport,
	"in":          KwIn,
	"instanceof":  KwInstanceof,
	"new":         KwNew,
	"null":        KwNull,
	"return":      KwReturn,
	"super":       KwSuper,
	"switch":      KwSwitch,
	"this":        KwThis,
	"throw":       KwThrow,
	"true":        KwTrue,
	"try":         KwTry,
	"typeof":      KwTypeof,
	"var":         KwVar,
	"void":        KwVoid,
	"while":       KwWhile,
	"with":        KwWith,
	"implements":  KwImplements,
	"interface":   KwInterface,
	"let":         KwLet,
	"package":     KwPackage,
	"private":     KwPrivate,
	"protected":   KwProtected,
	"public":      KwPublic,
	"static":      KwStatic,
	"yield":       KwYield,
	"abstract":    KwAbstract,
	"accessor":    KwAccessor,
	"any":         KwAny,
	"as":          KwAs,
	"asserts":     KwAsserts,
	"assert":      KwAssert,
	"async":       KwAsync,
	"await":       KwAwait,
	"bigint":      KwBigint,
	"boolean":     KwBoolean,
	"constructor": KwConstructor,
	"declare":     KwDeclare,
	"from":        KwFrom,
	"get":         KwGet,
	"global":      KwGlobal,
	"infer":       KwInfer,
	"is":          KwIs,
	"keyof":       KwKeyof,
	"module":      KwModule,
	"namespace":   KwNamespace,
	"never":       KwNever,
	"number":      KwNumber,
	"object":      KwObject,
	"of":          KwOf,
	"out":         KwOut,
	"override":    KwOverride,
	"readonly":    KwReadonly,
	"require":     KwRequire,
	"satisfies":   KwSatisfies,
	"set":         KwSet,
	"string":      KwString,
	"symbol":      KwSymbol,
	"type":        KwType,
	"undefined":   KwUndefined,
	"unique":      KwUnique,
	"unknown":     KwUnknown,
	"using":       KwUsing,
}

// LookupKeyword resolves an identifier's text to its keyword kind, or
// TokenIdent if the text is not a keyword.
func LookupKeyword(text string) Kind {
	if kind, ok := keywords[text]; ok {
		return kind
	}
	return TokenIdent
}

var punctText = map[Kind]string{
	TokenSemicolon:   ";",
	TokenComma:       ",",
	TokenLParen:      "(",
	TokenRParen:      ")",
	TokenLCurly:      "{",
	TokenRCurly:      "}",
	TokenLBrack:      "[",
	TokenRBrack:      "]",
	TokenLAngle:      "<",
	TokenRAngle:      ">",
	TokenTilde:       "~",
	TokenQuestion:    "?",
	TokenQuestion2:   "??",
	TokenQuestionDot: "?.",
	TokenAmp:         "&",
	TokenPipe:        "|",
	TokenPlus:        "+",
	TokenPlus2:       "++",
	TokenStar:        "*",
	TokenStar2:       "**",
	TokenSlash:       "/",
	TokenCaret:       "^",
	TokenPercent:     "%",
	TokenDot:         ".",
	TokenDot3:        "...",
	TokenColon:       ":",
	TokenEq:          "=",
	TokenEq2:         "==",
	TokenEq3:         "===",
	TokenFatArrow:    "=>",
	TokenBang:        "!",
	TokenNeq:         "!=",
	TokenNeq2:        "!==",
	TokenMinus:       "-",
	TokenMinus2:      "--",
	TokenLtEq:        "<=",
	TokenGtEq:        ">=",
	TokenPlusEq:      "+=",
	TokenMinusEq:     "-=",
	TokenPipeEq:      "|=",
	TokenAmpEq:       "&=",
	TokenCaretEq:     "^=",
	TokenSlashEq:     "/=",
	TokenStarEq:      "*=",
	TokenPercentEq:   "%=",
	TokenAmp2:        "&&",
	TokenPipe2:       "||",
	TokenShl:         "<<",
	TokenShr:         ">>",
	TokenUShr:        ">>>",
	TokenShlEq:       "<<=",
	TokenShrEq:       ">>=",
	TokenUShrEq:      ">>>=",
	TokenAmp2Eq:      "&&=",
	TokenPipe2Eq:     "||=",
	TokenStar2Eq:     "**=",
	TokenQuestion2Eq: "??=",
	TokenAt:          "@",
	TokenBacktick:    "`",
	TokenHash:        "#",
}

var tokenNames = map[Kind]string{
	Tombstone:             "TOMBSTONE",
	EOF:                   "EOF",
	TokenNumber:           "NUMBER_LITERAL",
	TokenBigInt:           "BIGINT_LITERAL",
	TokenString:           "STRING_LITERAL",
	TokenRegex:            "REGEX_LITERAL",
	TokenJsxText:          "JSX_TEXT_LITERAL",
	TokenJsxString:        "JSX_STRING_LITERAL",
	TokenTemplateChunk:    "TEMPLATE_CHUNK",
	TokenDollarCurly:      "DOLLAR_CURLY",
	TokenIdent:            "IDENT",
	TokenJsxIdent:         "JSX_IDENT",
	TokenError:            "ERROR_TOKEN",
	TokenNewline:          "NEWLINE",
	TokenWhitespace:       "WHITESPACE",
	TokenComment:          "COMMENT",
	TokenMultilineComment: "MULTILINE_COMMENT",
	TokenHashbang:         "HASHBANG",
}

var nodeNames = map[Kind]string{
	KindScript:                                   "Script",
	KindModule:                                   "Module",
	KindExpressionSnippet:                        "ExpressionSnippet",
	KindBogus:                                    "Bogus",
	KindBogusStatement:                           "BogusStatement",
	KindBogusExpression:                          "BogusExpression",
	KindBogusMember:                              "BogusMember",
	KindBogusBinding:                             "BogusBinding",
	KindBogusAssignment:                          "BogusAssignment",
	KindBogusParameter:                           "BogusParameter",
	KindBogusType:                                "BogusType",
	KindBogusImportSpecifier:                     "BogusImportSpecifier",
	KindDirectiveList:                            "DirectiveList",
	KindStatementList:                            "StatementList",
	KindModuleItemList:                           "ModuleItemList",
	KindParameterList:                            "ParameterList",
	KindArgumentList:                             "ArgumentList",
	KindArrayElementList:                         "ArrayElementList",
	KindObjectMemberList:                         "ObjectMemberList",
	KindClassMemberList:                          "ClassMemberList",
	KindSwitchCaseList:                           "SwitchCaseList",
	KindVariableDeclaratorList:                   "VariableDeclaratorList",
	KindTemplateElementList:                      "TemplateElementList",
	KindModifierList:                             "ModifierList",
	KindDecoratorList:                            "DecoratorList",
	KindImportSpecifierList:                      "ImportSpecifierList",
	KindExportSpecifierList:                      "ExportSpecifierList",
	KindArrayPatternElementList:                  "ArrayPatternElementList",
	KindObjectPatternPropertyList:                "ObjectPatternPropertyList",
	KindTypeArgumentList:                         "TypeArgumentList",
	KindTypeParameterList:                        "TypeParameterList",
	KindTypeMemberList:                           "TypeMemberList",
	KindTupleTypeElementList:                     "TupleTypeElementList",
	KindTypeList:                                 "TypeList",
	KindEnumMemberList:                           "EnumMemberList",
	KindJsxChildList:                             "JsxChildList",
	KindJsxAttributeList:                         "JsxAttributeList",
	KindTemplateTypeElementList:                  "TemplateTypeElementList",
	KindImportAssertionEntryList:                 "ImportAssertionEntryList",
	KindDirective:                                "Directive",
	KindBlockStatement:                           "BlockStatement",
	KindEmptyStatement:                           "EmptyStatement",
	KindExpressionStatement:                      "ExpressionStatement",
	KindIfStatement:                              "IfStatement",
	KindElseClause:                               "ElseClause",
	KindForStatement:                             "ForStatement",
	KindForInStatement:                           "ForInStatement",
	KindForOfStatement:                           "ForOfStatement",
	KindForVariableDeclaration:                   "ForVariableDeclaration",
	KindWhileStatement:                           "WhileStatement",
	KindDoWhileStatement:                         "DoWhileStatement",
	KindReturnStatement:                          "ReturnStatement",
	KindBreakStatement:                           "BreakStatement",
	KindContinueStatement:                        "ContinueStatement",
	KindThrowStatement:                           "ThrowStatement",
	KindTryStatement:                             "TryStatement",
	KindCatchClause:                              "CatchClause",
	KindCatchDeclaration:                         "CatchDeclaration",
	KindFinallyClause:                            "FinallyClause",
	KindSwitchStatement:                          "SwitchStatement",
	KindCaseClause:                               "CaseClause",
	KindDefaultClause:                            "DefaultClause",
	KindLabeledStatement:                         "LabeledStatement",
	KindDebuggerStatement:                        "DebuggerStatement",
	KindWithStatement:                            "WithStatement",
	KindVariableStatement:                        "VariableStatement",
	KindVariableDeclaration:                      "VariableDeclaration",
	KindVariableDeclarator:                       "VariableDeclarator",
	KindInitializerClause:                        "InitializerClause",
	KindFunctionDeclaration:                      "FunctionDeclaration",
	KindFunctionBody:                             "FunctionBody",
	KindClassDeclaration:                         "ClassDeclaration",
	KindLabel:                                    "Label",
	KindIdentifierExpression:                     "IdentifierExpression",
	KindReferenceIdentifier:                      "ReferenceIdentifier",
	KindName:                                     "Name",
	KindPrivateName:                              "PrivateName",
	KindThisExpression:                           "ThisExpression",
	KindSuperExpression:                          "SuperExpression",
	KindNumberLiteralExpression:                  "NumberLiteralExpression",
	KindBigIntLiteralExpression:                  "BigIntLiteralExpression",
	KindStringLiteralExpression:                  "StringLiteralExpression",
	KindBooleanLiteralExpression:                 "BooleanLiteralExpression",
	KindNullLiteralExpression:                    "NullLiteralExpression",
	KindRegexLiteralExpression:                   "RegexLiteralExpression",
	KindArrayExpression:                          "ArrayExpression",
	KindArrayHole:                                "ArrayHole",
	KindSpread:                                   "Spread",
	KindObjectExpression:                         "ObjectExpression",
	KindPropertyObjectMember:                     "PropertyObjectMember",
	KindMethodObjectMember:                       "MethodObjectMember",
	KindGetterObjectMember:                       "GetterObjectMember",
	KindSetterObjectMember:                       "SetterObjectMember",
	KindShorthandPropertyObjectMember:            "ShorthandPropertyObjectMember",
	KindLiteralMemberName:                        "LiteralMemberName",
	KindComputedMemberName:                       "ComputedMemberName",
	KindPrivateClassMemberName:                   "PrivateClassMemberName",
	KindFunctionExpression:                       "FunctionExpression",
	KindArrowFunctionExpression:                  "ArrowFunctionExpression",
	KindClassExpression:                          "ClassExpression",
	KindTemplateExpression:                       "TemplateExpression",
	KindTemplateChunkElement:                     "TemplateChunkElement",
	KindTemplateElement:                          "TemplateElement",
	KindParenthesizedExpression:                  "ParenthesizedExpression",
	KindSequenceExpression:                       "SequenceExpression",
	KindAssignmentExpression:                     "AssignmentExpression",
	KindConditionalExpression:                    "ConditionalExpression",
	KindBinaryExpression:                         "BinaryExpression",
	KindLogicalExpression:                        "LogicalExpression",
	KindInExpression:                             "InExpression",
	KindInstanceofExpression:                     "InstanceofExpression",
	KindUnaryExpression:                          "UnaryExpression",
	KindPreUpdateExpression:                      "PreUpdateExpression",
	KindPostUpdateExpression:                     "PostUpdateExpression",
	KindAwaitExpression:                          "AwaitExpression",
	KindYieldExpression:                          "YieldExpression",
	KindYieldArgument:                            "YieldArgument",
	KindNewExpression:                            "NewExpression",
	KindNewTargetExpression:                      "NewTargetExpression",
	KindImportMetaExpression:                     "ImportMetaExpression",
	KindImportCallExpression:                     "ImportCallExpression",
	KindCallExpression:                           "CallExpression",
	KindCallArguments:                            "CallArguments",
	KindStaticMemberExpression:                   "StaticMemberExpression",
	KindComputedMemberExpression:                 "ComputedMemberExpression",
	KindAsExpression:                             "AsExpression",
	KindSatisfiesExpression:                      "SatisfiesExpression",
	KindNonNullAssertionExpression:               "NonNullAssertionExpression",
	KindTypeAssertionExpression:                  "TypeAssertionExpression",
	KindInstantiationExpression:                  "InstantiationExpression",
	KindIdentifierAssignment:                     "IdentifierAssignment",
	KindStaticMemberAssignment:                   "StaticMemberAssignment",
	KindComputedMemberAssignment:                 "ComputedMemberAssignment",
	KindParenthesizedAssignment:                  "ParenthesizedAssignment",
	KindArrayAssignmentPattern:                   "ArrayAssignmentPattern",
	KindArrayAssignmentPatternRestElement:        "ArrayAssignmentPatternRestElement",
	KindAssignmentWithDefault:                    "AssignmentWithDefault",
	KindObjectAssignmentPattern:                  "ObjectAssignmentPattern",
	KindObjectAssignmentPatternProperty:          "ObjectAssignmentPatternProperty",
	KindObjectAssignmentPatternShorthandProperty: "ObjectAssignmentPatternShorthandProperty",
	KindObjectAssignmentPatternRest:              "ObjectAssignmentPatternRest",
	KindIdentifierBinding:                        "IdentifierBinding",
	KindArrayBindingPattern:                      "ArrayBindingPattern",
	KindBindingPatternWithDefault:                "BindingPatternWithDefault",
	KindArrayBindingPatternRestElement:           "ArrayBindingPatternRestElement",
	KindObjectBindingPattern:                     "ObjectBindingPattern",
	KindObjectBindingPatternProperty:             "ObjectBindingPatternProperty",
	KindObjectBindingPatternShorthandProperty:    "ObjectBindingPatternShorthandProperty",
	KindObjectBindingPatternRest:                 "ObjectBindingPatternRest",
	KindParameters:                               "Parameters",
	KindFormalParameter:                          "FormalParameter",
	KindRestParameter:                            "RestParameter",
	KindThisParameter:                            "ThisParameter",
	KindPropertyParameter:                        "PropertyParameter",
	KindDecorator:                                "Decorator",
	KindExtendsClause:                            "ExtendsClause",
	KindImplementsClause:                         "ImplementsClause",
	KindConstructorClassMember:                   "ConstructorClassMember",
	KindMethodClassMember:                        "MethodClassMember",
	KindPropertyClassMember:                      "PropertyClassMember",
	KindGetterClassMember:                        "GetterClassMember",
	KindSetterClassMember:                        "SetterClassMember",
	KindStaticInitializationBlock:                "StaticInitializationBlock",
	KindEmptyClassMember:                         "EmptyClassMember",
	KindIndexSignatureClassMember:                "IndexSignatureClassMember",
	KindImport:                                   "Import",
	KindImportBareClause:                         "ImportBareClause",
	KindImportDefaultClause:                      "ImportDefaultClause",
	KindImportNamespaceClause:                    "ImportNamespaceClause",
	KindImportNamedClause:                        "ImportNamedClause",
	KindNamedImportSpecifiers:                    "NamedImportSpecifiers",
	KindNamedImportSpecifier:                     "NamedImportSpecifier",
	KindShorthandNamedImportSpecifier:            "ShorthandNamedImportSpecifier",
	KindModuleSource:                             "ModuleSource",
	KindImportAssertion:                          "ImportAssertion",
	KindImportAssertionEntry:                     "ImportAssertionEntry",
	KindExport:                                   "Export",
	KindExportDefaultDeclaration:                 "ExportDefaultDeclaration",
	KindExportDefaultExpression:                  "ExportDefaultExpression",
	KindExportNamedClause:                        "ExportNamedClause",
	KindExportNamedSpecifier:                     "ExportNamedSpecifier",
	KindExportFromClause:                         "ExportFromClause",
	KindExportNamedFromClause:                    "ExportNamedFromClause",
	KindExportAsClause:                           "ExportAsClause",
	KindTsExportAssignment:                       "TsExportAssignment",
	KindTsImportEqualsDeclaration:                "TsImportEqualsDeclaration",
	KindTsExternalModuleReference:                "TsExternalModuleReference",
	KindTypeAnnotation:                           "TypeAnnotation",
	KindReturnTypeAnnotation:                     "ReturnTypeAnnotation",
	KindTypeArguments:                            "TypeArguments",
	KindTypeParameters:                           "TypeParameters",
	KindTypeParameter:                            "TypeParameter",
	KindTypeConstraint:                           "TypeConstraint",
	KindDefaultTypeClause:                        "DefaultTypeClause",
	KindAnyType:                                  "AnyType",
	KindUnknownType:                              "UnknownType",
	KindNumberType:                               "NumberType",
	KindBooleanType:                              "BooleanType",
	KindBigintType:                               "BigintType",
	KindStringType:                               "StringType",
	KindSymbolType:                               "SymbolType",
	KindVoidType:                                 "VoidType",
	KindUndefinedType:                            "UndefinedType",
	KindNeverType:                                "NeverType",
	KindNonPrimitiveType:                         "NonPrimitiveType",
	KindNullLiteralType:                          "NullLiteralType",
	KindThisType:                                 "ThisType",
	KindStringLiteralType:                        "StringLiteralType",
	KindNumberLiteralType:                        "NumberLiteralType",
	KindBigIntLiteralType:                        "BigIntLiteralType",
	KindBooleanLiteralType:                       "BooleanLiteralType",
	KindTemplateLiteralType:                      "TemplateLiteralType",
	KindTemplateTypeElement:                      "TemplateTypeElement",
	KindReferenceType:                            "ReferenceType",
	KindQualifiedName:                            "QualifiedName",
	KindTypeofType:                               "TypeofType",
	KindTypeOperatorType:                         "TypeOperatorType",
	KindArrayType:                                "ArrayType",
	KindIndexedAccessType:                        "IndexedAccessType",
	KindTupleType:                                "TupleType",
	KindNamedTupleTypeElement:                    "NamedTupleTypeElement",
	KindRestTupleTypeElement:                     "RestTupleTypeElement",
	KindOptionalTupleTypeElement:                 "OptionalTupleTypeElement",
	KindObjectType:                               "ObjectType",
	KindPropertySignatureTypeMember:              "PropertySignatureTypeMember",
	KindMethodSignatureTypeMember:                "MethodSignatureTypeMember",
	KindCallSignatureTypeMember:                  "CallSignatureTypeMember",
	KindConstructSignatureTypeMember:             "ConstructSignatureTypeMember",
	KindGetterSignatureTypeMember:                "GetterSignatureTypeMember",
	KindSetterSignatureTypeMember:                "SetterSignatureTypeMember",
	KindIndexSignatureTypeMember:                 "IndexSignatureTypeMember",
	KindIndexSignatureParameter:                  "IndexSignatureParameter",
	KindMappedType:                               "MappedType",
	KindMappedTypeAsClause:                       "MappedTypeAsClause",
	KindFunctionType:                             "FunctionType",
	KindConstructorType:                          "ConstructorType",
	KindUnionType:                                "UnionType",
	KindIntersectionType:                         "IntersectionType",
	KindConditionalType:                          "ConditionalType",
	KindInferType:                                "InferType",
	KindParenthesizedType:                        "ParenthesizedType",
	KindTypePredicate:                            "TypePredicate",
	KindAssertsReturnType:                        "AssertsReturnType",
	KindImportType:                               "ImportType",
	KindInterfaceDeclaration:                     "InterfaceDeclaration",
	KindInterfaceExtendsClause:                   "InterfaceExtendsClause",
	KindTypeAliasDeclaration:                     "TypeAliasDeclaration",
	KindEnumDeclaration:                          "EnumDeclaration",
	KindEnumMember:                               "EnumMember",
	KindModuleDeclaration:                        "ModuleDeclaration",
	KindModuleBlock:                              "ModuleBlock",
	KindGlobalDeclaration:                        "GlobalDeclaration",
	KindDeclareStatement:                         "DeclareStatement",
	KindDeclareFunctionDeclaration:               "DeclareFunctionDeclaration",
	KindDefiniteVariableAnnotation:               "DefiniteVariableAnnotation",
	KindJsxTagExpression:                         "JsxTagExpression",
	KindJsxElement:                               "JsxElement",
	KindJsxOpeningElement:                        "JsxOpeningElement",
	KindJsxClosingElement:                        "JsxClosingElement",
	KindJsxSelfClosingElement:                    "JsxSelfClosingElement",
	KindJsxFragment:                              "JsxFragment",
	KindJsxOpeningFragment:                       "JsxOpeningFragment",
	KindJsxClosingFragment:                       "JsxClosingFragment",
	KindJsxName:                                  "JsxName",
	KindJsxReferenceIdentifier:                   "JsxReferenceIdentifier",
	KindJsxNamespaceName:                         "JsxNamespaceName",
	KindJsxMemberName:                            "JsxMemberName",
	KindJsxAttribute:                             "JsxAttribute",
	KindJsxAttributeInitializer:                  "JsxAttributeInitializer",
	KindJsxSpreadAttribute:                       "JsxSpreadAttribute",
	KindJsxString:                                "JsxString",
	KindJsxText:                                  "JsxText",
	KindJsxExpressionChild:                       "JsxExpressionChild",
	KindJsxSpreadChild:                           "JsxSpreadChild",
	KindJsxExpressionAttributeValue:              "JsxExpressionAttributeValue",
}

var keywordText = func() map[Kind]string {
	m := make(map[Kind]string, len(keywords))
	for text, kind := range keywords {
		m[kind] = text
	}
	return m
}()

// Text returns the fixed source text of punctuation and keyword kinds, and
// the empty string for every other kind.
func (k Kind) Text() string {
	if t, ok := punctText[k]; ok {
		return t
	}
	return keywordText[k]
}

// String returns a stable, human-readable name for the kind.
func (k Kind) String() string {
	if t := k.Text(); t != "" {
		return t
	}
	if name, ok := tokenNames[k]; ok {
		return name
	}
	if name, ok := nodeNames[k]; ok {
		return name
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Describe renders the kind the way diagnostics mention it: punctuation and
// keywords quoted, everything else by name.
func (k Kind) Describe() string {
	if t := k.Text(); t != "" {
		return "'" + t + "'"
	}
	switch k {
	case EOF:
		return "the end of the file"
	case TokenIdent:
		return "an identifier"
	case TokenString:
		return "a string literal"
	case TokenNumber, TokenBigInt:
		return "a number literal"
	case TokenRegex:
		return "a regular expression"
	case TokenTemplateChunk:
		return "template text"
	case TokenDollarCurly:
		return "'${'"
	case TokenJsxText:
		return "JSX text"
	}
	return k.String()
}
