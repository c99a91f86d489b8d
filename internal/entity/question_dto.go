package entity

type AskQuestionRequest struct {
	DocumentID string `json:"document"`
	Question   string `json:"question"`
}

type QuestionResponse struct {
	ID           string `json:"id"`
	Document     string `json:"document"`
	QuestionText string `json:"question_text"`
	AnswerText   string `json:"answer_text"`
	CreatedAt    string `json:"created_at"`
}

type ListQuestionsResponse struct {
	Questions []*QuestionResponse `json:"questions"`
}
