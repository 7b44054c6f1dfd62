// internal/models/job.go
package models

// Job is the posting a gap analysis runs against. The engine only reads it;
// the record itself is owned by the job store.
type Job struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Company        string `json:"company"`
	JobDescription string `json:"jobDescription"`
	Industry       string `json:"industry,omitempty"`
	JobType        string `json:"jobType,omitempty"`
}

// Domain returns the free-text field used for domain template matching,
// preferring Industry over JobType.
func (j Job) Domain() string {
	if j.Industry != "" {
		return j.Industry
	}
	return j.JobType
}

// UserSkill is one declared skill from the user profile store. Proficiency
// may arrive as a label ("Intermediate"), a numeric string ("3"), or a
// number decoded from JSON; the normalizer handles all three.
type UserSkill struct {
	SkillName   string      `json:"skillName"`
	Proficiency interface{} `json:"proficiency"`
}

// JobHistory pairs a job with its ordered snapshot history (oldest first)
// for cross-job trend aggregation.
type JobHistory struct {
	Job       Job        `json:"job"`
	Snapshots []Snapshot `json:"snapshots"`
}
