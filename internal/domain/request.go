package domain

// SearchIntent classifies what the reader is trying to accomplish when
// they land on the article.
type SearchIntent string

// Possible search intent values
const (
	IntentInformational SearchIntent = "informational"
	IntentNavigational  SearchIntent = "navigational"
	IntentTransactional SearchIntent = "transactional"
	IntentCommercial    SearchIntent = "commercial"
)

// ContentType classifies the editorial shape of the article.
type ContentType string

// Possible content type values
const (
	ContentTypeHowTo   ContentType = "how-to"
	ContentTypeConcept ContentType = "concept"
	ContentTypeNews    ContentType = "news"
)

// Locale describes the language and market the article targets.
type Locale struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Country  string `json:"country"`
	Currency string `json:"currency"`
}

// AuthorPersona is the byline identity woven into generated content.
// Persistence of personas lives outside this core; the orchestration
// engine only consumes the value object.
type AuthorPersona struct {
	Name      string   `json:"name"`
	Company   string   `json:"company"`
	JobTitle  string   `json:"job_title"`
	Expertise []string `json:"expertise"`
	Bio       string   `json:"bio"`
	URL       string   `json:"url"`
}

// GenerationRequest carries everything needed to generate one article.
// It is immutable once handed to the orchestration engine.
type GenerationRequest struct {
	FocusKeyword    string        `json:"focus_keyword"`
	RelatedKeywords []string      `json:"related_keywords"`
	SearchIntent    SearchIntent  `json:"search_intent"`
	ContentType     ContentType   `json:"content_type"`
	Locale          Locale        `json:"locale"`
	Author          AuthorPersona `json:"author"`

	WordCountMin        int `json:"word_count_min"`
	WordCountMax        int `json:"word_count_max"`
	IntroWordCount      int `json:"intro_word_count"`
	ConclusionWordCount int `json:"conclusion_word_count"`
	SectionWordCount    int `json:"section_word_count"`
	MinFAQCount         int `json:"min_faq_count"`

	ContactURL string `json:"contact_url"`

	// Optional per-request provider choices. These are volatile and are
	// excluded from the cache fingerprint.
	AIProvider    string `json:"ai_provider,omitempty"`
	ImageProvider string `json:"image_provider,omitempty"`
}

// Validate checks if the GenerationRequest has valid data.
// Returns an error if any field fails validation.
func (r *GenerationRequest) Validate() error {
	if r.FocusKeyword == "" {
		return ErrEmptyFocusKeyword
	}

	if r.ContactURL == "" {
		return ErrEmptyContactURL
	}

	if r.WordCountMin <= 0 || r.WordCountMin >= r.WordCountMax {
		return ErrInvalidWordCountRange
	}

	if !isValidSearchIntent(r.SearchIntent) {
		return ErrInvalidSearchIntent
	}

	if !isValidContentType(r.ContentType) {
		return ErrInvalidContentType
	}

	if r.Author.Name == "" {
		return ErrEmptyAuthorName
	}

	return nil
}

func isValidSearchIntent(intent SearchIntent) bool {
	switch intent {
	case IntentInformational, IntentNavigational, IntentTransactional, IntentCommercial:
		return true
	}
	return false
}

func isValidContentType(ct ContentType) bool {
	switch ct {
	case ContentTypeHowTo, ContentTypeConcept, ContentTypeNews:
		return true
	}
	return false
}
