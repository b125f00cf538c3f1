package peg

// ParserVisitor dispatches on the concrete kind of a parser. Analyses and
// printers implement it and call Parser.Accept, which routes to the method
// for the parser's kind; the parser definitions stay free of analysis code.
//
// Visitors that only care about a few kinds embed VisitorBase and override
// the methods they need.
type ParserVisitor interface {
	VisitLiteral(p *Literal)
	VisitCharPredicate(p *CharPredicate)
	VisitTokenPredicate(p *TokenPredicate)
	VisitEndOfInput(p *EndOfInput)
	VisitSequence(p *Sequence)
	VisitOrderedChoice(p *OrderedChoice)
	VisitOptional(p *Optional)
	VisitRepetition(p *Repetition)
	VisitLookahead(p *Lookahead)
	VisitNegation(p *Negation)
	VisitAround(p *Around)
	VisitLeftRecursive(p *LeftRecursive)
	VisitSemanticAction(p *SemanticAction)
	VisitLazy(p *Lazy)
	VisitMemo(p *Memo)
	VisitCustom(p *Custom)
}

// VisitorBase implements ParserVisitor by routing every kind to Default.
// Embed it and override individual VisitX methods to specialize.
type VisitorBase struct {
	// Default handles any kind without an overridden method. A nil Default
	// ignores the parser.
	Default func(p Parser)
}

func (v *VisitorBase) visit(p Parser) {
	if v.Default != nil {
		v.Default(p)
	}
}

func (v *VisitorBase) VisitLiteral(p *Literal)               { v.visit(p) }
func (v *VisitorBase) VisitCharPredicate(p *CharPredicate)   { v.visit(p) }
func (v *VisitorBase) VisitTokenPredicate(p *TokenPredicate) { v.visit(p) }
func (v *VisitorBase) VisitEndOfInput(p *EndOfInput)         { v.visit(p) }
func (v *VisitorBase) VisitSequence(p *Sequence)             { v.visit(p) }
func (v *VisitorBase) VisitOrderedChoice(p *OrderedChoice)   { v.visit(p) }
func (v *VisitorBase) VisitOptional(p *Optional)             { v.visit(p) }
func (v *VisitorBase) VisitRepetition(p *Repetition)         { v.visit(p) }
func (v *VisitorBase) VisitLookahead(p *Lookahead)           { v.visit(p) }
func (v *VisitorBase) VisitNegation(p *Negation)             { v.visit(p) }
func (v *VisitorBase) VisitAround(p *Around)                 { v.visit(p) }
func (v *VisitorBase) VisitLeftRecursive(p *LeftRecursive)   { v.visit(p) }
func (v *VisitorBase) VisitSemanticAction(p *SemanticAction) { v.visit(p) }
func (v *VisitorBase) VisitLazy(p *Lazy)                     { v.visit(p) }
func (v *VisitorBase) VisitMemo(p *Memo)                     { v.visit(p) }
func (v *VisitorBase) VisitCustom(p *Custom)                 { v.visit(p) }
