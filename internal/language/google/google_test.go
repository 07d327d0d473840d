package google

import (
	"testing"

	"cloud.google.com/go/language/apiv1/languagepb"
	"github.com/stretchr/testify/require"

	"nltools/internal/language"
)

func annotateResponse() *languagepb.AnnotateTextResponse {
	return &languagepb.AnnotateTextResponse{
		Language: "en",
		DocumentSentiment: &languagepb.Sentiment{
			Score:     0.6,
			Magnitude: 1.2,
		},
		Sentences: []*languagepb.Sentence{{
			Text:      &languagepb.TextSpan{Content: "Hello John.", BeginOffset: 0},
			Sentiment: &languagepb.Sentiment{Score: 0.6, Magnitude: 1.2},
		}},
		Entities: []*languagepb.Entity{{
			Name:     "John",
			Type:     languagepb.Entity_PERSON,
			Salience: 0.9,
			Metadata: map[string]string{"mid": "/m/01"},
			Mentions: []*languagepb.EntityMention{{
				Text: &languagepb.TextSpan{Content: "John", BeginOffset: 6},
			}},
		}},
		Tokens: []*languagepb.Token{{
			Text:  &languagepb.TextSpan{Content: "John", BeginOffset: 6},
			Lemma: "John",
			PartOfSpeech: &languagepb.PartOfSpeech{
				Tag:    languagepb.PartOfSpeech_NOUN,
				Proper: languagepb.PartOfSpeech_PROPER,
				Number: languagepb.PartOfSpeech_SINGULAR,
			},
		}},
	}
}

func TestNormalizePopulatesRequestedFeaturesOnly(t *testing.T) {
	resp := annotateResponse()

	sentimentOnly := normalize(language.AnalysisRequest{
		Features: []language.Feature{language.FeatureSentiment},
	}, resp)
	require.Equal(t, "en", sentimentOnly.Language)
	require.NotNil(t, sentimentOnly.SentimentScore)
	require.Equal(t, float32(0.6), *sentimentOnly.SentimentScore)
	require.Equal(t, float32(1.2), *sentimentOnly.SentimentMagnitude)
	require.Len(t, sentimentOnly.Sentences, 1)
	require.Equal(t, "Hello John.", sentimentOnly.Sentences[0].Text)
	require.Nil(t, sentimentOnly.Entities)
	require.Nil(t, sentimentOnly.Tokens)

	entitiesOnly := normalize(language.AnalysisRequest{
		Features: []language.Feature{language.FeatureEntities},
	}, resp)
	require.Nil(t, entitiesOnly.SentimentScore)
	require.Nil(t, entitiesOnly.Sentences)
	require.Len(t, entitiesOnly.Entities, 1)
	entity := entitiesOnly.Entities[0]
	require.Equal(t, "John", entity.Name)
	require.Equal(t, "PERSON", entity.Type)
	require.Equal(t, float32(0.9), entity.Salience)
	require.Equal(t, []string{"John"}, entity.Mentions)
	require.Equal(t, map[string]string{"mid": "/m/01"}, entity.Metadata)
}

func TestNormalizeTokenOffsets(t *testing.T) {
	resp := annotateResponse()

	// Without an encoding the vendor offsets are meaningless.
	noEncoding := normalize(language.AnalysisRequest{
		Features: []language.Feature{language.FeatureSyntax},
	}, resp)
	require.Len(t, noEncoding.Tokens, 1)
	require.Equal(t, language.UnknownOffset, noEncoding.Tokens[0].BeginOffset)

	withEncoding := normalize(language.AnalysisRequest{
		Features: []language.Feature{language.FeatureSyntax},
		Encoding: language.EncodingUTF8,
	}, resp)
	token := withEncoding.Tokens[0]
	require.Equal(t, int32(6), token.BeginOffset)
	require.Equal(t, "NOUN", token.Tag)
	require.Equal(t, "John", token.Lemma)
	require.Equal(t, "PROPER", token.Proper)
	require.Equal(t, "SINGULAR", token.Number)
	require.Equal(t, "GENDER_UNKNOWN", token.Gender)
}

func TestNormalizeKeepsVendorResponseInRaw(t *testing.T) {
	resp := annotateResponse()
	out := normalize(language.AnalysisRequest{
		Features: []language.Feature{language.FeatureSentiment},
	}, resp)
	require.Same(t, resp, out.Raw)
}

func TestNewMatchesFactorySignature(t *testing.T) {
	var factory language.Factory = New
	provider, err := factory(map[string]string{CredentialFileParam: "/tmp/creds.json"})
	require.NoError(t, err)
	require.ElementsMatch(t, []language.Feature{
		language.FeatureSentiment,
		language.FeatureEntities,
		language.FeatureSyntax,
	}, provider.SupportedFeatures())
}

func TestNewNilParams(t *testing.T) {
	provider, err := New(nil)
	require.NoError(t, err)
	require.NotNil(t, provider)
}
