package grammar

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Profile holds lexical conventions of the rule notation: which bare identifiers are keywords
// and which operator spellings are recognized as literal terminals.
type Profile struct {
	// Keywords are identifiers treated as literal terminals when not declared as rules.
	Keywords []string `yaml:"keywords"`
	// Punctuators are operator and punctuation terminals recognized in rule text.
	Punctuators []string `yaml:"punctuators"`
	// ExpressionRoot names the rule the precedence chain starts from.
	ExpressionRoot string `yaml:"expression_root"`
	// Root names default root rule.
	Root string `yaml:"root"`
}

// Default root and expression root rule names.
const (
	DefaultRoot           = "root_unit"
	DefaultExpressionRoot = "expr"
)

var (
	ErrEmptyPunctuator = errors.New("empty punctuator")
	ErrBadKeyword      = errors.New("keyword must look like identifier")
)

// DefaultProfile returns profile for C-like grammars.
func DefaultProfile() *Profile {
	return &Profile{
		Keywords: []string{
			"void", "bool", "int", "float", "string", "object", "class",
			"for", "while", "do", "break", "continue", "if", "else", "return",
			"switch", "case", "default", "import", "let",
		},
		Punctuators: []string{
			"(", ")", "[", "]", "{", "}", ";", ":", ",", ".", "?",
			"==", "!=", "<=", ">=", "<", ">",
			"+", "-", "*", "/", "%", "**",
			"=", "+=", "-=", "*=", "/=", "%=", "**=", "<<=", ">>=", "&=", "^=", "|=",
			"<<", ">>", "&&", "||", "!", "~", "&", "|", "^", "++", "--",
		},
		ExpressionRoot: DefaultExpressionRoot,
		Root:           DefaultRoot,
	}
}

// ParseProfile decodes YAML profile. Missing fields are taken from DefaultProfile.
func ParseProfile(data []byte) (*Profile, error) {
	p := DefaultProfile()
	if e := yaml.Unmarshal(data, p); e != nil {
		return nil, fmt.Errorf("decoding profile: %w", e)
	}
	if e := p.Validate(); e != nil {
		return nil, e
	}
	return p, nil
}

// LoadProfile reads YAML profile from file.
func LoadProfile(path string) (*Profile, error) {
	data, e := os.ReadFile(path)
	if e != nil {
		return nil, fmt.Errorf("reading profile: %w", e)
	}
	return ParseProfile(data)
}

// Validate checks profile contents.
func (p *Profile) Validate() error {
	for _, op := range p.Punctuators {
		if op == "" {
			return ErrEmptyPunctuator
		}
	}
	for _, kw := range p.Keywords {
		if !(Terminal{LiteralTerminal, kw}).IsWord() {
			return fmt.Errorf("%w: %q", ErrBadKeyword, kw)
		}
	}
	return nil
}

// IsKeyword reports whether name is a profile keyword.
func (p *Profile) IsKeyword(name string) bool {
	for _, kw := range p.Keywords {
		if kw == name {
			return true
		}
	}
	return false
}

// SortedPunctuators returns punctuators ordered for longest-first matching.
func (p *Profile) SortedPunctuators() []string {
	res := append([]string(nil), p.Punctuators...)
	sort.SliceStable(res, func(i, j int) bool {
		return len(res[i]) > len(res[j])
	})
	return res
}

// Marshal encodes profile as YAML.
func (p *Profile) Marshal() ([]byte, error) {
	return yaml.Marshal(p)
}
