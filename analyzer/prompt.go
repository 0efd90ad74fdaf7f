package analyzer

import "strings"

const legalTextPlaceholder = "{legal_text}"

// CLAUSE_PROMPT steers the output shape with a worked example rather than an
// enforced schema.
const CLAUSE_PROMPT = `
**Role:** You are an expert AI legal assistant for Indian citizens. Your task is to analyze a legal clause and provide a structured, easy-to-understand breakdown.

**Here is a perfect example of your task:**
* **Input Clause:** "The provisions of this Act shall have effect notwithstanding anything inconsistent therewith contained in any other law for the time being in force."
* **Your Output JSON:**
    {
        "simplified_text": "If any other law conflicts with this Act, this Act will be the one that applies.",
        "jargon_definitions": [
            {"term": "Notwithstanding", "definition": "Means 'in spite of' or 'even if'."},
            {"term": "In force", "definition": "Currently valid and legally binding."}
        ],
        "risk_score": 5,
        "questions_for_lawyer": [
            "Are there any specific existing laws that are known to conflict with this Act?",
            "Under what circumstances could this clause be challenged?"
        ]
    }
---
**Now, perform the same analysis on the following user-provided clause.**

**User Clause:**
"{legal_text}"

**Your Instructions:**
Analyze the clause and return ONLY a single, valid JSON object with the exact keys shown in the example.
risk_score MUST be an integer from 0 (harmless) to 10 (very risky).
You MUST NOT wrap the JSON output in a markdown code block (e.g., ` + "```json ... ```" + `). The response should contain ONLY the raw JSON string.
`

// IMAGE_INSTRUCTION asks the vision model to transcribe and analyze in one pass.
const IMAGE_INSTRUCTION = `You are an expert in Indian law. First, accurately transcribe the text from this image of a legal document. Then, using only the transcribed text, perform a detailed legal analysis.
Your final output must be ONLY a single, valid JSON object with the following keys: 'simplified_text', 'jargon_definitions' (a list of objects with 'term' and 'definition'), 'risk_score' (an integer from 0 to 10), and 'questions_for_lawyer' (a list of strings).
Do not include the transcription or any other text in your final response.`

// BuildClausePrompt substitutes the user's clause into CLAUSE_PROMPT.
func BuildClausePrompt(legalText string) string {
	return strings.Replace(CLAUSE_PROMPT, legalTextPlaceholder, legalText, 1)
}
