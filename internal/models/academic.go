package models

// MarksWeights holds the three weight percentages used to combine the mark
// categories into a composite score. The weights must sum to 100; a
// violation is a configuration error and is never silently corrected.
type MarksWeights struct {
	Midterm float64 `db:"midterm_weight" json:"midterm_weight"`
	Class   float64 `db:"class_weight" json:"class_weight"`
	Exam    float64 `db:"exam_weight" json:"exam_weight"`
}

// MarkRow is one row of a single mark table (midterm, class score or exam
// score) joined with student and subject names.
type MarkRow struct {
	StudentID   string  `db:"student_id" json:"student_id"`
	StudentName string  `db:"student_name" json:"student_name"`
	SubjectID   string  `db:"subject_id" json:"subject_id"`
	SubjectName string  `db:"subject_name" json:"subject_name"`
	TotalMarks  float64 `db:"total_marks" json:"total_marks"`
}

// GradeReportRow is one student×subject line of the grade report. Missing
// mark categories are zero-filled before the composite score is computed.
type GradeReportRow struct {
	StudentID    string  `json:"student_id"`
	StudentName  string  `json:"student_name"`
	SubjectID    string  `json:"subject_id"`
	SubjectName  string  `json:"subject_name"`
	MidtermMarks float64 `json:"midterm_marks"`
	ClassMarks   float64 `json:"class_marks"`
	ExamMarks    float64 `json:"exam_marks"`
	Score        float64 `json:"score"`
	Grade        string  `json:"grade"`
}

// PerformanceRow aggregates one student's composite scores across all
// subjects. Rank 1 is the highest average; tied averages keep their input
// order (stable sort), no further tie-break is applied.
type PerformanceRow struct {
	StudentID    string  `json:"student_id"`
	StudentName  string  `json:"student_name"`
	SubjectCount int     `json:"subject_count"`
	AverageScore float64 `json:"average_score"`
	HighestScore float64 `json:"highest_score"`
	LowestScore  float64 `json:"lowest_score"`
	ACount       int     `json:"a_count"`
	BCount       int     `json:"b_count"`
	FailCount    int     `json:"fail_count"`
	Status       string  `json:"status"`
	Rank         int     `json:"rank"`
}
