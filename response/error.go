// response/error.go
// Classification of BillForward error responses. A body is tried as JSON first, then as the
// legacy XML OAuth error document, and otherwise surfaced verbatim.
package response

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/antchfx/xmlquery"
	bferrors "github.com/deploymenttheory/go-api-sdk-billforward/errors"
	"golang.org/x/net/html"
)

// outcome is the result of running one classification stage against a body.
type outcome int

const (
	// outcomeNotParsed means the body is not in the stage's format; the next stage runs.
	outcomeNotParsed outcome = iota
	// outcomeUnrecognised means the body parsed but did not carry an error document.
	outcomeUnrecognised
	// outcomeClassified means the stage produced the final error.
	outcomeClassified
)

type stageResult struct {
	outcome outcome
	err     error
}

// jsonErrorBody is the structured error document, either nested under "error" or at the top level.
type jsonErrorBody struct {
	ErrorType       string `json:"errorType"`
	ErrorMessage    string `json:"errorMessage"`
	ErrorParameters []any  `json:"errorParameters"`
}

type jsonErrorEnvelope struct {
	Error *jsonErrorBody `json:"error"`
	jsonErrorBody
}

// HandleAPIErrorResponse classifies a non-2xx response that carried a body. The result is always
// a non-nil error: *errors.APIError for JSON and unrecognised bodies, *errors.AuthorizationError
// for the XML OAuth error document.
func HandleAPIErrorResponse(statusCode int, contentType string, body []byte) error {
	jsonResult := classifyJSON(statusCode, body)
	switch jsonResult.outcome {
	case outcomeClassified:
		return jsonResult.err
	case outcomeUnrecognised:
		return rawAPIError(statusCode, contentType, body)
	}

	if xmlResult := classifyXML(statusCode, body); xmlResult.outcome == outcomeClassified {
		return xmlResult.err
	}

	return rawAPIError(statusCode, contentType, body)
}

// classifyJSON recognises {"error": {"errorType", "errorMessage", "errorParameters"}} and the
// flat variant of the same document.
func classifyJSON(statusCode int, body []byte) stageResult {
	if !json.Valid(body) {
		return stageResult{outcome: outcomeNotParsed}
	}

	var envelope jsonErrorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return stageResult{outcome: outcomeUnrecognised}
	}

	errorBody := envelope.Error
	if errorBody == nil {
		errorBody = &envelope.jsonErrorBody
	}

	if errorBody.ErrorType == "" {
		return stageResult{outcome: outcomeUnrecognised}
	}

	return stageResult{
		outcome: outcomeClassified,
		err: &bferrors.APIError{
			StatusCode:  statusCode,
			Type:        errorBody.ErrorType,
			Message:     errorBody.ErrorMessage,
			Parameters:  errorBody.ErrorParameters,
			RawResponse: string(body),
		},
	}
}

// classifyXML recognises the OAuth error document, e.g.
//
//	<error>
//	   <errorType>Oauth</errorType>
//	   <errorMessage>error="invalid_token", error_description="Invalid access token: 0468"</errorMessage>
//	</error>
func classifyXML(statusCode int, body []byte) stageResult {
	doc, err := xmlquery.Parse(bytes.NewReader(body))
	if err != nil {
		return stageResult{outcome: outcomeNotParsed}
	}

	typeNode := xmlquery.FindOne(doc, "//error//errorType")
	messageNode := xmlquery.FindOne(doc, "//error//errorMessage")
	if typeNode == nil || messageNode == nil {
		return stageResult{outcome: outcomeUnrecognised}
	}

	code, description := splitAuthorizationMessage(messageNode.InnerText())

	return stageResult{
		outcome: outcomeClassified,
		err: &bferrors.AuthorizationError{
			APIError: bferrors.APIError{
				StatusCode:  statusCode,
				Type:        strings.TrimSpace(typeNode.InnerText()),
				Message:     strings.TrimSpace(messageNode.InnerText()),
				RawResponse: string(body),
			},
			Code:        code,
			Description: description,
		},
	}
}

// splitAuthorizationMessage splits `error=<code>, error_description=<description>` into its
// values. The description may itself contain commas and equals signs.
func splitAuthorizationMessage(message string) (code string, description string) {
	message = strings.TrimSpace(message)
	head := message

	const descriptionKey = "error_description="
	if idx := strings.Index(message, descriptionKey); idx >= 0 {
		description = unquote(message[idx+len(descriptionKey):])
		head = strings.TrimSuffix(strings.TrimSpace(message[:idx]), ",")
	}

	first, _, _ := strings.Cut(head, ", ")
	if _, value, found := strings.Cut(first, "="); found {
		code = unquote(value)
	} else {
		code = unquote(first)
	}

	if description == "" {
		description = code
	}

	return code, description
}

func unquote(value string) string {
	return strings.Trim(strings.TrimSpace(value), `"`)
}

// rawAPIError is the terminal stage: the body is embedded verbatim. HTML bodies additionally get
// their paragraph text extracted into Details.
func rawAPIError(statusCode int, contentType string, body []byte) error {
	apiError := &bferrors.APIError{
		StatusCode:  statusCode,
		RawResponse: string(body),
	}

	if isHTML(contentType, body) {
		apiError.Details = htmlParagraphs(body)
	}

	return apiError
}

func isHTML(contentType string, body []byte) bool {
	mimeType, _ := parseHeader(contentType)
	if mimeType == "text/html" {
		return true
	}

	prefix := strings.ToLower(strings.TrimSpace(string(body)))
	return strings.HasPrefix(prefix, "<!doctype html") || strings.HasPrefix(prefix, "<html")
}

// htmlParagraphs collects the text of every <p> element, and <title> when there are none.
func htmlParagraphs(body []byte) []string {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil
	}

	var paragraphs []string
	var title string

	var textOf func(*html.Node, *strings.Builder)
	textOf = func(n *html.Node, sb *strings.Builder) {
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				if sb.Len() > 0 {
					sb.WriteString(" ")
				}
				sb.WriteString(text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			textOf(c, sb)
		}
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "p":
				var sb strings.Builder
				textOf(n, &sb)
				if sb.Len() > 0 {
					paragraphs = append(paragraphs, sb.String())
				}
				return
			case "title":
				var sb strings.Builder
				textOf(n, &sb)
				title = sb.String()
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if len(paragraphs) == 0 && title != "" {
		return []string{title}
	}
	return paragraphs
}
