package lmsapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// TutorAPI wraps the /tutors/* endpoints.
type TutorAPI struct {
	c *Client
}

// Courses

func (t *TutorAPI) GetMyCourses(ctx context.Context) (PagedResult[Course], error) {
	var res PagedResult[Course]
	err := t.c.get(ctx, "/tutors/courses/my", nil, &res)
	return res, err
}

func (t *TutorAPI) CreateCourse(ctx context.Context, payload interface{}) (*Course, error) {
	var crs Course
	if err := t.c.post(ctx, "/tutors/courses", nil, payload, &crs); err != nil {
		return nil, err
	}
	return &crs, nil
}

func (t *TutorAPI) GetCourse(ctx context.Context, courseID int) (*Course, error) {
	var crs Course
	if err := t.c.get(ctx, fmt.Sprintf("/tutors/courses/%d", courseID), nil, &crs); err != nil {
		return nil, err
	}
	return &crs, nil
}

func (t *TutorAPI) GetMenteesInCourse(ctx context.Context, courseID, page, size int) (PagedResult[User], error) {
	var res PagedResult[User]
	err := t.c.get(ctx, fmt.Sprintf("/tutors/courses/%d/mentees", courseID), listQuery(page, size, nil), &res)
	return res, err
}

// Exercises

func (t *TutorAPI) CreateExercise(ctx context.Context, payload interface{}) (*Exercise, error) {
	var ex Exercise
	if err := t.c.post(ctx, "/tutors/exercises", nil, payload, &ex); err != nil {
		return nil, err
	}
	return &ex, nil
}

func (t *TutorAPI) DeleteExercise(ctx context.Context, exerciseID int) error {
	return t.c.del(ctx, fmt.Sprintf("/tutors/exercises/%d", exerciseID))
}

func (t *TutorAPI) GetExerciseDetail(ctx context.Context, exerciseID int) (*Exercise, error) {
	var ex Exercise
	if err := t.c.get(ctx, fmt.Sprintf("/tutors/exercises/%d", exerciseID), nil, &ex); err != nil {
		return nil, err
	}
	return &ex, nil
}

func (t *TutorAPI) GetExercises(ctx context.Context, lessonID int) (PagedResult[Exercise], error) {
	var res PagedResult[Exercise]
	err := t.c.get(ctx, fmt.Sprintf("/tutors/lesson/%d/exercises", lessonID), nil, &res)
	return res, err
}

func (t *TutorAPI) GetMyExercises(ctx context.Context) (PagedResult[Exercise], error) {
	var res PagedResult[Exercise]
	err := t.c.get(ctx, "/tutors/myexercises", nil, &res)
	return res, err
}

// Submissions

func (t *TutorAPI) GetSubmissions(ctx context.Context, exerciseID, page, size int) (PagedResult[Submission], error) {
	var res PagedResult[Submission]
	err := t.c.get(ctx, fmt.Sprintf("/tutors/exercises/%d/submissions", exerciseID), listQuery(page, size, nil), &res)
	return res, err
}

func (t *TutorAPI) GradeSubmission(ctx context.Context, submissionID int, grade float64) error {
	payload := map[string]interface{}{"id": submissionID, "grade": grade}
	return t.c.post(ctx, "/tutors/submission", nil, payload, nil)
}

// Ratings

func (t *TutorAPI) GetRatings(ctx context.Context, sessionID, page, size int) (PagedResult[Rating], error) {
	var res PagedResult[Rating]
	err := t.c.get(ctx, fmt.Sprintf("/tutors/sessions/%d/ratings", sessionID), listQuery(page, size, nil), &res)
	return res, err
}

func (t *TutorAPI) ReplyRating(ctx context.Context, ratingID int, reply string) error {
	q := make(url.Values)
	q.Set("reply", reply)
	return t.c.put(ctx, fmt.Sprintf("/tutors/ratings/%d/reply", ratingID), q, nil, nil)
}

func (t *TutorAPI) ReportRating(ctx context.Context, ratingID int, title, description string) error {
	payload := map[string]string{"title": title, "description": description}
	return t.c.post(ctx, fmt.Sprintf("/tutors/ratings/%d/report", ratingID), nil, payload, nil)
}

// Conversations

func (t *TutorAPI) JoinConversation(ctx context.Context, menteeID, tutorID int) (*Conversation, error) {
	q := make(url.Values)
	q.Set("menteeId", strconv.Itoa(menteeID))
	q.Set("tutorId", strconv.Itoa(tutorID))
	var conv Conversation
	if err := t.c.post(ctx, "/tutors/conversations/join", q, nil, &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

func (t *TutorAPI) SendMessage(ctx context.Context, conversationID, senderID int, content string) error {
	payload := map[string]interface{}{"senderId": senderID, "content": content}
	return t.c.post(ctx, fmt.Sprintf("/tutors/conversations/%d/messages", conversationID), nil, payload, nil)
}

// Subject registrations

func (t *TutorAPI) GetAvailableSubjects(ctx context.Context) (PagedResult[Subject], error) {
	var res PagedResult[Subject]
	err := t.c.get(ctx, "/tutors/subjects", nil, &res)
	return res, err
}

func (t *TutorAPI) GetSubjectRegistrations(ctx context.Context) (PagedResult[SubjectRegistration], error) {
	var res PagedResult[SubjectRegistration]
	err := t.c.get(ctx, "/tutors/subject-registrations", nil, &res)
	return res, err
}

func (t *TutorAPI) CreateSubjectRegistration(ctx context.Context, payload interface{}) (*SubjectRegistration, error) {
	var reg SubjectRegistration
	if err := t.c.post(ctx, "/tutors/subject-registrations", nil, payload, &reg); err != nil {
		return nil, err
	}
	return &reg, nil
}

// Lessons

func (t *TutorAPI) GetLessonsByCourse(ctx context.Context, courseID int) (PagedResult[Lesson], error) {
	var res PagedResult[Lesson]
	err := t.c.get(ctx, fmt.Sprintf("/tutors/lessons/courses/%d", courseID), nil, &res)
	return res, err
}

func (t *TutorAPI) GetLessonDetail(ctx context.Context, courseID, lessonID int) (*Lesson, error) {
	var lsn Lesson
	if err := t.c.get(ctx, fmt.Sprintf("/tutors/lessons/courses/%d/lessons/%d", courseID, lessonID), nil, &lsn); err != nil {
		return nil, err
	}
	return &lsn, nil
}

func (t *TutorAPI) CreateLesson(ctx context.Context, payload interface{}) (*Lesson, error) {
	var lsn Lesson
	if err := t.c.post(ctx, "/tutors/lessons", nil, payload, &lsn); err != nil {
		return nil, err
	}
	return &lsn, nil
}

func (t *TutorAPI) UpdateLesson(ctx context.Context, lessonID int, payload interface{}) (*Lesson, error) {
	var lsn Lesson
	if err := t.c.put(ctx, fmt.Sprintf("/tutors/lessons/%d", lessonID), nil, payload, &lsn); err != nil {
		return nil, err
	}
	return &lsn, nil
}

// Sessions

func (t *TutorAPI) GetSessionsByCourse(ctx context.Context, courseID int) (PagedResult[Session], error) {
	var res PagedResult[Session]
	err := t.c.get(ctx, fmt.Sprintf("/tutors/course/%d/sessions", courseID), nil, &res)
	return res, err
}

func (t *TutorAPI) GetSessionDetail(ctx context.Context, sessionID int) (*Session, error) {
	var sess Session
	if err := t.c.get(ctx, fmt.Sprintf("/tutors/course/sessions/%d", sessionID), nil, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (t *TutorAPI) CreateSession(ctx context.Context, courseID int, payload interface{}) (*Session, error) {
	var sess Session
	if err := t.c.post(ctx, fmt.Sprintf("/tutors/course/%d/sessions", courseID), nil, payload, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (t *TutorAPI) UpdateSession(ctx context.Context, courseID int, payload interface{}) (*Session, error) {
	var sess Session
	if err := t.c.put(ctx, fmt.Sprintf("/tutors/course/%d/sessions", courseID), nil, payload, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Announcements

func (t *TutorAPI) GetAnnouncements(ctx context.Context, page, size int, recipientType, title, adminID string) (PagedResult[Announcement], error) {
	var res PagedResult[Announcement]
	q := listQuery(page, size, map[string]string{"recipientType": recipientType, "title": title, "adminId": adminID})
	err := t.c.get(ctx, "/tutors/announcements", q, &res)
	return res, err
}

func (t *TutorAPI) GetAnnouncementsByAdmin(ctx context.Context, adminID, page, size int) (PagedResult[Announcement], error) {
	var res PagedResult[Announcement]
	err := t.c.get(ctx, fmt.Sprintf("/tutors/announcements/admin/%d", adminID), listQuery(page, size, nil), &res)
	return res, err
}

// Forum

func (t *TutorAPI) CreateForum(ctx context.Context, sessionID int) (*Forum, error) {
	var frm Forum
	if err := t.c.post(ctx, fmt.Sprintf("/tutors/forum/%d", sessionID), nil, nil, &frm); err != nil {
		return nil, err
	}
	return &frm, nil
}

func (t *TutorAPI) GetQuestionsByForum(ctx context.Context, forumID int) (PagedResult[ForumQuestion], error) {
	var res PagedResult[ForumQuestion]
	err := t.c.get(ctx, fmt.Sprintf("/tutors/forum/%d/questions", forumID), nil, &res)
	return res, err
}

func (t *TutorAPI) AskQuestion(ctx context.Context, forumID int, content string) error {
	return t.c.post(ctx, fmt.Sprintf("/tutors/forum/%d/questions", forumID), nil, map[string]string{"content": content}, nil)
}

func (t *TutorAPI) AnswerQuestion(ctx context.Context, questionID int, answer interface{}) error {
	return t.c.post(ctx, fmt.Sprintf("/tutors/forum/%d/answer", questionID), nil, answer, nil)
}

// Resources

func (t *TutorAPI) GetResources(ctx context.Context, lessonID int) (PagedResult[Resource], error) {
	var res PagedResult[Resource]
	err := t.c.get(ctx, fmt.Sprintf("/tutors/lesson/%d/resources", lessonID), nil, &res)
	return res, err
}

func (t *TutorAPI) GetMyResources(ctx context.Context) (PagedResult[Resource], error) {
	var res PagedResult[Resource]
	err := t.c.get(ctx, "/tutors/myresources", nil, &res)
	return res, err
}

func (t *TutorAPI) CreateResource(ctx context.Context, payload interface{}) (*Resource, error) {
	var rsc Resource
	if err := t.c.post(ctx, "/tutors/resources", nil, payload, &rsc); err != nil {
		return nil, err
	}
	return &rsc, nil
}

func (t *TutorAPI) UpdateResource(ctx context.Context, resourceID int, payload interface{}) (*Resource, error) {
	var rsc Resource
	if err := t.c.put(ctx, fmt.Sprintf("/tutors/resources/%d", resourceID), nil, payload, &rsc); err != nil {
		return nil, err
	}
	return &rsc, nil
}

func (t *TutorAPI) DeleteResource(ctx context.Context, resourceID int) error {
	return t.c.del(ctx, fmt.Sprintf("/tutors/resources/%d", resourceID))
}
