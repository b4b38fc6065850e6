package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/cognicard/cognicard/internal/entities"
	"github.com/cognicard/cognicard/internal/parsers"
)

const geminiModel = "gemini-2.5-flash"

// contactSchema constrains extraction responses to the contact field set.
// Every field is required so the model returns empty strings instead of
// omitting keys.
var contactSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"name":        {Type: genai.TypeString, Description: "Full name of the person."},
		"email":       {Type: genai.TypeString, Description: "Email address."},
		"phoneWork":   {Type: genai.TypeString, Description: "Work phone number (office, landline)."},
		"phoneMobile": {Type: genai.TypeString, Description: "Mobile phone number (cell)."},
		"company":     {Type: genai.TypeString, Description: "Company name."},
		"title":       {Type: genai.TypeString, Description: "Job title or position."},
		"address":     {Type: genai.TypeString, Description: "Full mailing or office address."},
		"website":     {Type: genai.TypeString, Description: "Company or personal website URL."},
		"notes":       {Type: genai.TypeString, Description: "Any other relevant information."},
		"groups": {
			Type:        genai.TypeArray,
			Description: "Up to three relevant groups based on the person's industry or role (e.g. 'Work', 'Colleague', 'Sales').",
			Items:       &genai.Schema{Type: genai.TypeString},
		},
	},
	Required: []string{"name", "email", "phoneWork", "phoneMobile", "company", "title", "address", "website", "notes", "groups"},
}

var addressSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"address":    {Type: genai.TypeString, Description: "The complete formatted address extracted from the image, including street, city, state, postal code and country where visible."},
		"confidence": {Type: genai.TypeNumber, Description: "Confidence level from 0 to 1 for the extracted address."},
		"notes":      {Type: genai.TypeString, Description: "Additional context about the address (e.g. 'Business address', 'Mailing address')."},
	},
	Required: []string{"address", "confidence", "notes"},
}

// GeminiClient implements Extractor and Researcher on the Gemini API.
type GeminiClient struct {
	client *genai.Client
}

func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiClient{client: client}, nil
}

func (g *GeminiClient) ExtractFromText(ctx context.Context, text string) (entities.PartialContact, error) {
	prompt := fmt.Sprintf(`Analyze the following text, which could be from a plain text file or a document, and extract the contact information.
Structure the output as a JSON object matching the provided schema.
If a piece of information is not present in the text, return an empty string for that field.

Text to analyze:
---
%s
---`, text)

	resp, err := g.client.Models.GenerateContent(ctx, geminiModel,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   contactSchema,
		},
	)
	if err != nil {
		return entities.PartialContact{}, fmt.Errorf("extract contact from text: %w", err)
	}
	return decodeContact(resp)
}

func (g *GeminiClient) ExtractFromImage(ctx context.Context, image []byte, mimeType string) (entities.PartialContact, error) {
	contents := []*genai.Content{{
		Parts: []*genai.Part{
			{InlineData: &genai.Blob{MIMEType: mimeType, Data: image}},
			{Text: "Analyze this business card image and extract the contact information. " +
				"Distinguish between work and mobile phone numbers if possible. Extract the website URL. " +
				"Provide the output as a JSON object matching the provided schema. " +
				"If a piece of information is not present on the card, return an empty string for that field."},
		},
	}}

	resp, err := g.client.Models.GenerateContent(ctx, geminiModel, contents,
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   contactSchema,
		},
	)
	if err != nil {
		return entities.PartialContact{}, fmt.Errorf("extract contact from image: %w", err)
	}
	return decodeContact(resp)
}

func (g *GeminiClient) ScanAddress(ctx context.Context, image []byte, mimeType string) (AddressScan, error) {
	contents := []*genai.Content{{
		Parts: []*genai.Part{
			{InlineData: &genai.Blob{MIMEType: mimeType, Data: image}},
			{Text: "Analyze this image and extract any address information you can find. " +
				"The source could be mail, envelopes, business cards, signs, building addresses, or documents with address fields. " +
				"Extract the complete address and format it properly. If you see partial address information, " +
				"do your best to reconstruct a complete address. " +
				"Provide a confidence score based on how clear and complete the address information is."},
		},
	}}

	resp, err := g.client.Models.GenerateContent(ctx, geminiModel, contents,
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   addressSchema,
		},
	)
	if err != nil {
		return AddressScan{}, fmt.Errorf("scan address: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return AddressScan{}, ErrEmptyResponse
	}

	var scan AddressScan
	if err := json.Unmarshal([]byte(text), &scan); err != nil {
		return AddressScan{}, fmt.Errorf("decode address response: %w", err)
	}
	return scan, nil
}

func (g *GeminiClient) Research(ctx context.Context, name, company string) (Intel, error) {
	prompt := fmt.Sprintf(`Act as a professional research assistant.
Your goal is to provide a concise intelligence report on a professional contact.

Contact Name: %q
Company: %q

Please find and summarize the following information using a web search:
1. Company Overview: What does %q do? What are its key products or services?
2. Professional Profile: Find the LinkedIn profile for %q, preferably associated with %q.
3. Social Presence: Briefly mention any other significant professional online presence (e.g. Twitter/X, professional blog, GitHub).
4. Recent Activity: Mention any very recent news, articles, or significant achievements related to the person or company if available.

Structure your response as a brief, professional summary. Do not use markdown.
Be concise and focus on the most relevant information for someone about to engage with this contact.
If you cannot find specific information (e.g. a LinkedIn profile), state that it was not readily found.`,
		name, company, company, name, company)

	resp, err := g.client.Models.GenerateContent(ctx, geminiModel,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
		},
	)
	if err != nil {
		return Intel{}, fmt.Errorf("research contact: %w", err)
	}

	summary := strings.TrimSpace(resp.Text())
	if summary == "" {
		return Intel{}, ErrEmptyResponse
	}

	return Intel{
		Summary: summary,
		Sources: groundingSources(resp),
	}, nil
}

// decodeContact parses the JSON body of an extraction response and fills in
// any missing state so every field is defined.
func decodeContact(resp *genai.GenerateContentResponse) (entities.PartialContact, error) {
	text := resp.Text()
	if text == "" {
		return entities.PartialContact{}, ErrEmptyResponse
	}

	var partial entities.PartialContact
	if err := json.Unmarshal([]byte(text), &partial); err != nil {
		return entities.PartialContact{}, fmt.Errorf("decode contact response: %w", err)
	}
	return parsers.Normalize(partial), nil
}

// groundingSources collects the web references that grounded a search-backed
// response, deduplicated by URI.
func groundingSources(resp *genai.GenerateContentResponse) []Source {
	sources := []Source{}
	if len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return sources
	}

	seen := make(map[string]bool)
	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk.Web == nil || chunk.Web.URI == "" || seen[chunk.Web.URI] {
			continue
		}
		seen[chunk.Web.URI] = true
		sources = append(sources, Source{URI: chunk.Web.URI, Title: chunk.Web.Title})
	}
	return sources
}
