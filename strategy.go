package chatshare

// Strategy extracts conversation turns from page markup.
// Implementations are stateless and safe for concurrent use.
type Strategy interface {
	// Parse returns the turns found in markup, numbered 1..N.
	// An empty result means the strategy does not apply to the page.
	Parse(markup string) ([]Turn, error)

	// Name returns the strategy's identifier (e.g., "dom", "stream").
	Name() string
}

// ParseResult holds the turns recovered from a page and the strategy that
// produced them.
type ParseResult struct {
	Strategy string
	Turns    []Turn
}

// Parser turns page markup into a ParseResult.
type Parser interface {
	Parse(markup string) (*ParseResult, error)
}

// Ensure ChainParser implements Parser at compile time.
var _ Parser = (*ChainParser)(nil)

// ChainParser tries strategies in order and keeps the first non-empty result.
type ChainParser struct {
	strategies []Strategy
}

// NewChainParser creates a ChainParser over the given strategies.
func NewChainParser(strategies ...Strategy) *ChainParser {
	return &ChainParser{strategies: strategies}
}

// Parse runs each strategy in turn until one yields turns. When none do, the
// result has no turns and no strategy; callers decide whether that is an
// error (see RequireTurns). A strategy error stops the chain.
func (p *ChainParser) Parse(markup string) (*ParseResult, error) {
	for _, s := range p.strategies {
		turns, err := s.Parse(markup)
		if err != nil {
			return nil, err
		}
		if len(turns) > 0 {
			return &ParseResult{Strategy: s.Name(), Turns: turns}, nil
		}
	}
	return &ParseResult{}, nil
}

// RequireTurns returns ENOMESSAGES if turns is empty.
func RequireTurns(turns []Turn) error {
	if len(turns) == 0 {
		return Errorf(ENOMESSAGES, "no messages extracted; page structure may have changed or the link is not public")
	}
	return nil
}
