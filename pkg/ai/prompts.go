package ai

const systemPrompt = "You are an expert resume writer and career consultant."

const resumeSchemaHint = `{
  "name": "...",
  "role": "...",
  "phoneno": "...",
  "email": "...",
  "location": "...",
  "linkedin": "...",
  "github": "...",
  "summary": "...",
  "experience": [{"company": "...", "position": "...", "from": "...", "to": "...", "description": "..."}],
  "skills": ["..."],
  "education": [{"degree": "...", "field": "...", "institution": "...", "year": "..."}]
}`

const enhancePromptTemplate = `Here is the current resume as JSON:
%s

User request: %s

Enhance the resume according to the request. Keep all factual information intact.
Experience MUST be in strict reverse chronological order (most recent first).
Return ONLY a single JSON object matching this structure, with no commentary:
%s`

const extractPromptTemplate = `Extract a structured resume from the following document.
If a field is missing in the document, use an empty string or empty list.
Return ONLY a single JSON object matching this structure, with no commentary:
%s

Document:
%s`

const extractImagePrompt = `Extract a structured resume from this image.
If a field is not visible, use an empty string or empty list.
Return ONLY a single JSON object matching this structure, with no commentary:
` + resumeSchemaHint

const titlePromptTemplate = `Generate a short, descriptive title (max 5-7 words) for a resume editing conversation that starts with this request: "%s". Return only the title, nothing else.`
