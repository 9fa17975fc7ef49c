// Package content holds the typed educational content produced by the generators.
// Every variant carries its TemplateType discriminant so it can be stored and served
// as a self-describing document.
package content

type TemplateType string

const (
	TemplateQuiz               TemplateType = "quiz"
	TemplateTimeline           TemplateType = "timeline"
	TemplateMatchUp            TemplateType = "matchUp"
	TemplateFindTheMatch       TemplateType = "findTheMatch"
	TemplateGroupSort          TemplateType = "groupSort"
	TemplateOpenTheBox         TemplateType = "openTheBox"
	TemplateAnagram            TemplateType = "anagram"
	TemplateMnemonic           TemplateType = "mnemonic"
	TemplateCoursePresentation TemplateType = "coursePresentation"
	TemplateAccordionNotes     TemplateType = "accordionNotes"
)

var templates = []TemplateType{
	TemplateQuiz,
	TemplateTimeline,
	TemplateMatchUp,
	TemplateFindTheMatch,
	TemplateGroupSort,
	TemplateOpenTheBox,
	TemplateAnagram,
	TemplateMnemonic,
	TemplateCoursePresentation,
	TemplateAccordionNotes,
}

// Templates lists every supported template type in a stable order. The slice is
// a copy owned by the caller.
func Templates() []TemplateType {
	out := make([]TemplateType, len(templates))
	copy(out, templates)
	return out
}

func (t TemplateType) Valid() bool {
	for _, known := range templates {
		if t == known {
			return true
		}
	}
	return false
}

// Content is implemented only by the variants in this package.
type Content interface {
	Template() TemplateType
	isContent()
}

type Quiz struct {
	TemplateType TemplateType   `json:"templateType"`
	Title        string         `json:"title"`
	Questions    []QuizQuestion `json:"questions"`
}

type QuizQuestion struct {
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation"`
}

type Timeline struct {
	TemplateType TemplateType    `json:"templateType"`
	Title        string          `json:"title"`
	Events       []TimelineEvent `json:"events"`
}

type TimelineEvent struct {
	Date        string `json:"date"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type MatchUp struct {
	TemplateType TemplateType `json:"templateType"`
	Title        string       `json:"title"`
	LinesMode    LinesMode    `json:"linesMode"`
}

type LinesMode struct {
	Pairs []MatchUpPair `json:"pairs"`
}

type MatchUpPair struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

type FindTheMatch struct {
	TemplateType TemplateType       `json:"templateType"`
	Title        string             `json:"title"`
	Pairs        []FindTheMatchPair `json:"pairs"`
}

type FindTheMatchPair struct {
	Concept     string `json:"concept"`
	Affirmation string `json:"affirmation"`
}

type GroupSort struct {
	TemplateType TemplateType `json:"templateType"`
	Title        string       `json:"title"`
	Groups       []SortGroup  `json:"groups"`
}

type SortGroup struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

type OpenTheBox struct {
	TemplateType TemplateType `json:"templateType"`
	Title        string       `json:"title"`
	Items        []BoxItem    `json:"items"`
}

type BoxItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type AnagramContent struct {
	TemplateType TemplateType  `json:"templateType"`
	Title        string        `json:"title"`
	Words        []AnagramWord `json:"words"`
}

type AnagramWord struct {
	Word string `json:"word"`
	Hint string `json:"hint"`
}

type MnemonicContent struct {
	TemplateType TemplateType   `json:"templateType"`
	Title        string         `json:"title"`
	Items        []MnemonicItem `json:"items"`
}

type MnemonicItem struct {
	Concept     string `json:"concept"`
	Mnemonic    string `json:"mnemonic"`
	Explanation string `json:"explanation"`
}

type CoursePresentationContent struct {
	TemplateType TemplateType `json:"templateType"`
	Title        string       `json:"title"`
	Slides       []Slide      `json:"slides"`
}

type Slide struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type AccordionNotesContent struct {
	TemplateType TemplateType  `json:"templateType"`
	Title        string        `json:"title"`
	Sections     []NoteSection `json:"sections"`
}

type NoteSection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (Quiz) Template() TemplateType                      { return TemplateQuiz }
func (Timeline) Template() TemplateType                  { return TemplateTimeline }
func (MatchUp) Template() TemplateType                   { return TemplateMatchUp }
func (FindTheMatch) Template() TemplateType              { return TemplateFindTheMatch }
func (GroupSort) Template() TemplateType                 { return TemplateGroupSort }
func (OpenTheBox) Template() TemplateType                { return TemplateOpenTheBox }
func (AnagramContent) Template() TemplateType            { return TemplateAnagram }
func (MnemonicContent) Template() TemplateType           { return TemplateMnemonic }
func (CoursePresentationContent) Template() TemplateType { return TemplateCoursePresentation }
func (AccordionNotesContent) Template() TemplateType     { return TemplateAccordionNotes }

func (Quiz) isContent()                      {}
func (Timeline) isContent()                  {}
func (MatchUp) isContent()                   {}
func (FindTheMatch) isContent()              {}
func (GroupSort) isContent()                 {}
func (OpenTheBox) isContent()                {}
func (AnagramContent) isContent()            {}
func (MnemonicContent) isContent()           {}
func (CoursePresentationContent) isContent() {}
func (AccordionNotesContent) isContent()     {}
