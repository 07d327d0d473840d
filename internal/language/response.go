package language

import "encoding/json"

// UnknownOffset is the begin-offset sentinel used when no encoding was
// supplied with the request and the provider could not compute offsets.
const UnknownOffset int32 = -1

// Sentence is one sentence of the analyzed text with its own sentiment.
type Sentence struct {
	Text      string  `json:"text"`
	Score     float32 `json:"score"`
	Magnitude float32 `json:"magnitude"`
}

// Entity is a known entity found in the text, such as a person, an
// organization, or a location. Salience is the vendor-assigned importance
// of the entity within the document, in [0, 1].
type Entity struct {
	Name     string            `json:"name"`
	Type     string            `json:"type"`
	Salience float32           `json:"salience"`
	Mentions []string          `json:"mentions,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Token is the smallest syntactic building block of the text: its
// part-of-speech tag, lemma, and morphological attributes.
type Token struct {
	Text        string `json:"text"`
	BeginOffset int32  `json:"beginOffset"`
	Tag         string `json:"tag"`
	Lemma       string `json:"lemma"`
	Gender      string `json:"gender"`
	Mood        string `json:"mood"`
	Person      string `json:"person"`
	Proper      string `json:"proper"`
	Form        string `json:"form"`
	Aspect      string `json:"aspect"`
	Case        string `json:"case"`
	Number      string `json:"number"`
}

// AnalysisResponse is the normalized result of one provider call.
//
// Fields corresponding to features that were not requested are absent
// (nil), never zero-valued placeholders: a nil Entities slice means
// "entities were not requested", an empty one means "requested, none
// found". Raw holds the vendor-native result for escape-hatch access and
// is excluded from the canonical JSON shape.
type AnalysisResponse struct {
	Language           string     `json:"language"`
	SentimentScore     *float32   `json:"sentimentScore,omitempty"`
	SentimentMagnitude *float32   `json:"sentimentMagnitude,omitempty"`
	Sentences          []Sentence `json:"sentences,omitempty"`
	Entities           []Entity   `json:"entities,omitempty"`
	Tokens             []Token    `json:"tokens,omitempty"`
	Raw                any        `json:"-"`
}

// JSON returns the canonical serialization of the response, suitable for
// persistence in a document marker and for cross-process consumers.
func (r *AnalysisResponse) JSON() (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ParseResponse decodes a canonical JSON serialization back into a
// response. Raw is not round-tripped.
func ParseResponse(data []byte) (*AnalysisResponse, error) {
	var r AnalysisResponse
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
