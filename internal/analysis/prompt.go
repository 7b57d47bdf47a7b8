package analysis

import "strings"

const symptomPrompt = `You are the healthcare assistant of an Indian consumer health app. Read the patient's symptoms and suggest care from BOTH the Ayurvedic tradition and Allopathic (modern) medicine.

Rules:
- The answer is informational only.
- Always advise the patient to see a real doctor for a diagnosis.
- If the symptoms suggest an emergency, say clearly that immediate medical attention is needed.

Patient symptoms: {symptoms}

Reply with JSON ONLY, no markdown and no extra text, shaped exactly like this:
{
  "aiAnalysis": "two or three sentences on the likely condition",
  "severity": "mild|moderate|severe",
  "seekEmergencyCare": true or false,
  "ayurvedicMedicines": [
    {"name": "medicine name", "dosage": "amount", "timing": "when to take", "duration": "for how long"}
  ],
  "allopathicMedicines": [
    {"name": "medicine name", "dosage": "amount", "timing": "when to take", "duration": "for how long"}
  ]
}

List 2-4 entries of each kind and keep to common, safe options. Ayurvedic entries should favour traditional remedies such as Tulsi, Ashwagandha or Triphala; Allopathic entries should favour common over-the-counter medicines where appropriate.`

const pingPrompt = `Say "OK" if you can hear me.`

// Disclaimer accompanies every analysis returned to a patient.
const Disclaimer = "This is AI-generated advice for informational purposes only. Please consult a qualified healthcare professional for proper diagnosis and treatment."

func buildPrompt(symptoms string) string {
	return strings.Replace(symptomPrompt, "{symptoms}", symptoms, 1)
}

// StripFences removes a surrounding markdown code fence, with or without a
// json language tag.
func StripFences(text string) string {
	s := strings.TrimSpace(text)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
