package catalog

import (
	"net/http"

	"github.com/aiweb/codec"
)

const generateImageSchema = `{
  "type": "object",
  "required": ["prompt"],
  "properties": {
    "prompt": {"type": "string", "minLength": 1, "maxLength": 100},
    "num_images": {"type": "integer", "minimum": 1, "maximum": 4},
    "size": {"type": "string", "enum": ["256x256", "512x512", "1024x1024"]}
  }
}`

var (
	inText = codec.ModalityText
	inJSON = codec.ModalityJSON
	inFile = codec.ModalityFile
)

func builtin() []Endpoint {
	return []Endpoint{
		{
			ID:          "generate_text",
			Name:        "Text generation",
			Description: "Generate text from a prompt",
			Intro:       "<p>Chinese and English prompts; keep them under 500 characters.</p>",
			Path:        "/api/generate-text",
			Method:      http.MethodPost,
			Inputs:      []codec.Modality{inText},
			Request:     map[string]any{"prompt": "Write a poem about spring", "max_length": 200},
			Responses: []Example{
				{Title: "Success (200)", Data: map[string]any{"success": true, "result": "Spring wind on the face..."}},
				{Title: "Failure (400)", Data: map[string]any{"success": false, "error": "prompt must not be empty"}},
			},
			Errors: []ErrorCode{{400, "invalid parameters"}, {500, "server error"}},
		},
		{
			ID:          "generate_image",
			Name:        "Image generation",
			Description: "Generate images from a text prompt",
			Intro:       "<p>English prompts only (at most 100 characters).</p>",
			Path:        "/api/generate-image",
			Method:      http.MethodPost,
			Inputs:      []codec.Modality{inJSON},
			Request:     map[string]any{"prompt": "a cute cat", "num_images": 1, "size": "512x512"},
			Responses: []Example{
				{Title: "Success (200)", Data: map[string]any{"success": true, "images": []string{"data:image/png;base64,..."}}},
			},
			Schema: generateImageSchema,
		},
		{
			ID:          "analyze_document",
			Name:        "Document analysis",
			Description: "Upload a document for analysis",
			Intro:       "<p>PDF, DOCX and TXT are supported.</p>",
			Path:        "/api/analyze-document",
			Method:      http.MethodPost,
			Inputs:      []codec.Modality{inFile},
			Responses: []Example{
				{Title: "Success (200)", Data: map[string]any{"success": true, "summary": "This paper introduces...", "tags": []string{"climate"}}},
			},
			Errors: []ErrorCode{{400, "invalid file"}, {413, "file too large"}},
		},
		{
			ID:          "multi_modal",
			Name:        "Multi-modal analysis",
			Description: "Joint analysis of text and images",
			Intro:       "<p>Both a text and an image are required.</p>",
			Path:        "/api/multi-modal",
			Method:      http.MethodPost,
			Inputs:      []codec.Modality{inText, inFile},
			Responses: []Example{
				{Title: "Success (200)", Data: map[string]any{"success": true, "analysis": "scene matches", "confidence": 0.92}},
			},
			Errors: []ErrorCode{{400, "missing text or image"}},
		},
		{
			ID:          "detect",
			Name:        "Object detection",
			Description: "Detect structures in a single image",
			Intro:       "<p>Upload one image; crops and a visualized copy are produced.</p>",
			Path:        "/detect",
			Method:      http.MethodPost,
			Inputs:      []codec.Modality{inFile},
			Responses: []Example{
				{Title: "Success (200)", Data: map[string]any{
					"success":          true,
					"filename":         "page1.jpg",
					"visualized_image": "/image/page1_vis.jpg",
					"crop_images":      []map[string]any{{"class_id": 0, "confidence": 0.91, "crop_image": "/crop/page1_0.jpg"}},
				}},
			},
			Errors: []ErrorCode{{400, "file must be an image"}, {500, "processing failed"}},
		},
		{
			ID:          "detect_batch",
			Name:        "Batch detection",
			Description: "Detect structures in several images",
			Intro:       "<p>Non-image files are reported per file and do not fail the batch.</p>",
			Path:        "/detect_batch",
			Method:      http.MethodPost,
			Inputs:      []codec.Modality{inFile},
			Responses: []Example{
				{Title: "Success (200)", Data: map[string]any{"success": true, "processed_count": 2, "results": []map[string]any{
					{"filename": "a.jpg", "success": true},
					{"filename": "notes.txt", "success": false, "error": "not an image"},
				}}},
			},
			Errors: []ErrorCode{{400, "no files received"}},
		},
		{
			ID:          "recognize",
			Name:        "Text recognition",
			Description: "OCR on cropped text images",
			Intro:       "<p>Each image should contain a single line of text.</p>",
			Path:        "/recognize",
			Method:      http.MethodPost,
			Inputs:      []codec.Modality{inFile},
			Responses: []Example{
				{Title: "Success (200)", Data: map[string]any{"success": true, "results": []map[string]any{{"filename": "line.png", "text": "Hello", "score": 0.98}}}},
			},
			Errors: []ErrorCode{{400, "invalid image"}, {500, "model prediction error"}},
		},
		{
			ID:          "translate_dual",
			Name:        "PDF translation (side by side)",
			Description: "Translate a PDF into a bilingual two-column PDF",
			Intro:       "<p>Returns a downloadable PDF named <code>dual_&lt;name&gt;.pdf</code>.</p>",
			Path:        "/translate-dual/",
			Method:      http.MethodPost,
			Inputs:      []codec.Modality{inFile},
			Errors:      []ErrorCode{{400, "only PDF files are supported"}, {500, "translation failed"}},
		},
		{
			ID:          "translate_mono",
			Name:        "PDF translation",
			Description: "Translate a PDF into a single-column translated PDF",
			Intro:       "<p>Returns a downloadable PDF named <code>mono_&lt;name&gt;.pdf</code>.</p>",
			Path:        "/translate-mono/",
			Method:      http.MethodPost,
			Inputs:      []codec.Modality{inFile},
			Errors:      []ErrorCode{{400, "only PDF files are supported"}, {500, "translation failed"}},
		},
		{
			ID:          "compound_extraction",
			Name:        "Compound extraction",
			Description: "Extract compounds from a chemistry paper",
			Intro:       "<p>Upload a PDF; compounds are returned with their SMILES.</p>",
			Path:        "/compound-extraction/",
			Method:      http.MethodPost,
			Inputs:      []codec.Modality{inFile},
			Responses: []Example{
				{Title: "Success (200)", Data: map[string]any{"success": true, "compounds": []map[string]any{{"name": "benzene", "smiles": "c1ccccc1"}}}},
			},
			Errors: []ErrorCode{{400, "invalid PDF"}, {500, "extraction failed"}},
		},
		{
			ID:          "status",
			Name:        "Service status",
			Description: "Check that the backend is running",
			Path:        "/",
			Method:      http.MethodGet,
			Inputs:      []codec.Modality{inText},
			Responses: []Example{
				{Title: "Success (200)", Data: map[string]any{"message": "API is running"}},
			},
		},
	}
}
