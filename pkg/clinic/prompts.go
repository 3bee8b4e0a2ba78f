package clinic

// DefaultClinicName is used when no clinic name is configured.
const DefaultClinicName = "Good Health Clinic"

// emergencyKeyword triggers the emergency route when present in the
// latest message (case-insensitive).
const emergencyKeyword = "emergency"

// emergencyResponse is the fixed instruction returned on the emergency
// route. No model call is made for it.
const emergencyResponse = "We've detected an emergency. Please contact emergency services immediately or call our 24/7 urgent line: +43 00 00 00."

// modelSystemMessage frames the assistant's role and the patient context.
// Formatted with the clinic name and the stored patient profile.
const modelSystemMessage = `You are a helpful medical assistant for %s.
Use the patient's history to provide relevant, personalized appointment scheduling or advice.
Patient profile: %s`

// updateProfileInstruction asks the model to fold the conversation into
// an updated patient profile. Formatted with the current profile text.
const updateProfileInstruction = `Update the patient's medical/appointment profile with new information.

CURRENT PROFILE:
%s

ANALYZE FOR:
1. Appointment history (dates, times, no-shows)
2. Medical preferences or concerns
3. Previous diagnoses or treatments
4. Medication usage or allergies
5. Follow-up needs

Focus on verified appointment and medical details only. Summarize key points clearly.

Update the profile based on this conversation:
`

// Defaults used when a patient has no stored profile yet.
const (
	noProfileFound = "No existing patient profile found."
	noHistoryFound = "No existing history."
)
