package ocr

// FallbackVersion identifies the canonical fallback payload revision. Bump it
// whenever FallbackText changes, so stored records remain explainable.
const FallbackVersion = "claimsight:fallback:v1"

// FallbackText is the fixed sample claim substituted whenever the vision
// provider is unavailable. It is deterministic on purpose: no real OCR
// happened, so the content is independent of the uploaded document. The
// extraction engine parses it like any provider output.
const FallbackText = `MEDICAL CLAIM FORM

Patient Information:
Name: Jane Doe
Age: 34
ID: PAT001234

Diagnosis: Malaria

Medications Prescribed:
- Paracetamol 500mg - Quantity: 10 tablets

Procedures:
- Malaria Rapid Test
- Blood Test

Admission Details:
Admitted: Yes
Admission Date: 10/06/2023
Discharge Date: 12/06/2023

Total Amount: ₦15,000

Doctor: Dr. Smith
Facility: Lagos General Hospital`
