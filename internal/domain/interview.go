package domain

// ScheduledInterview is read-only to the engine; there is no mutation path.
type ScheduledInterview struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	InterviewerName   string `json:"interviewer_name"`
	InterviewerNumber string `json:"interviewer_number"`
	InterviewerEmail  string `json:"interviewer_email"`
	IntervieweeName   string `json:"interviewee_name"`
	IntervieweeNumber string `json:"interviewee_number"`
	IntervieweeEmail  string `json:"interviewee_email"`
	ScheduledTime     string `json:"scheduled_time"`
	Status            string `json:"status"`
}
