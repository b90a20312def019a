package echoportal

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/darasa-lms/portal/core/session"
	"github.com/darasa-lms/portal/services/lmsapi"
)

func (s *server) registerMenteePages() {
	g := s.app.Group("/mentee", s.guard("/mentee", session.RoleMentee))

	g.GET("", s.menteeHome)
	g.GET("/profile", s.menteeProfile)

	g.GET("/courses", s.menteeCourses)
	g.GET("/register", s.menteeCourses)
	g.GET("/courses/:id", s.menteeCourseDetail)
	g.POST("/courses/:id/enroll", s.menteeEnroll)
	g.POST("/courses/:id/unenroll", s.menteeUnenroll)
	g.GET("/courses/:id/enrolled", s.menteeEnrollConfirm)
	g.GET("/my-courses", s.menteeMyCourses)
	g.GET("/registered-courses", s.menteeMyCourses)
	g.GET("/cancel-registration", s.menteeCancelRegistration)

	g.GET("/courses/:id/lessons", s.menteeLessons)
	g.GET("/lessons/:id", s.menteeLessonDetail)
	g.GET("/courses/:id/lessons/:lessonId", s.menteeCourseLesson)
	g.GET("/courses/:id/lessons/:lessonId/exercises/:exerciseId", s.menteeCourseExercise)

	g.GET("/exercises/:id", s.menteeExercise)
	g.POST("/exercises/:id/submit", s.menteeExerciseSubmit)

	g.GET("/schedule", s.menteeFullSchedule)
	g.GET("/courses/:id/schedule", s.menteeSchedule)
	g.GET("/sessions/:id", s.menteeSessionDetail)
	g.GET("/courses/:id/sessions/:sessionId", s.menteeCourseSession)
	g.GET("/courses/:id/sessions/:sessionId/forum", s.menteeCourseSessionForum)
	g.POST("/sessions/:id/rate", s.menteeRateSession)
	g.GET("/ratings", s.menteeRatings)

	g.GET("/forums/:id", s.menteeForum)
	g.POST("/forums/:id/questions", s.menteeAskQuestion)
	g.POST("/sessions/:id/forum", s.menteeCreateForum)
	g.GET("/questions", s.menteeQuestions)

	g.GET("/messages", s.menteeConversations)
	g.GET("/messages/:id", s.menteeMessages)
	g.POST("/messages/:id", s.menteeSendMessage)

	g.GET("/feedback", s.menteeFeedback)
	g.GET("/report-tickets", s.menteeFeedback)
	g.POST("/feedback/new", s.menteeFeedbackCreate)
}

func (s *server) menteeHome(ctx echo.Context) error {
	res, err := s.opts.API.Mentee.GetMyEnrollCourses(apiContext(ctx))
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "mentee_home", s.viewData(ctx, "My learning", echo.Map{
		"Courses":  res.Content,
		"BackTrap": s.opts.BackTrap,
	}))
}

func (s *server) menteeProfile(ctx echo.Context) error {
	rec := contextSession(ctx)
	usr, err := s.opts.API.Mentee.GetProfile(apiContext(ctx), rec.User.ID)
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "mentee_profile", s.viewData(ctx, "My profile", echo.Map{
		"Profile": usr,
	}))
}

// menteeCourses is the catalogue. Enrollment state blends the backend list
// with courses enrolled earlier in this very session.
func (s *server) menteeCourses(ctx echo.Context) error {
	page := queryInt(ctx, "page", 0)
	name := ctx.QueryParam("course_name")

	reqCtx := apiContext(ctx)
	res, err := s.opts.API.Mentee.GetCourses(reqCtx, page, 10, "", "", name)
	if err != nil {
		return err
	}

	rec := contextSession(ctx)
	enrolled := make(map[int]bool, len(rec.EnrolledIDs))
	for _, id := range rec.EnrolledIDs {
		enrolled[id] = true
	}
	if mine, err := s.opts.API.Mentee.GetMyEnrollCourses(reqCtx); err == nil {
		for _, crs := range mine.Content {
			enrolled[crs.Key()] = true
		}
	}

	return ctx.Render(http.StatusOK, "mentee_courses", s.viewData(ctx, "Courses", echo.Map{
		"Courses":    res.Content,
		"Enrolled":   enrolled,
		"Page":       page,
		"TotalPages": res.TotalPages,
		"CourseName": name,
		"Query":      filterQuery("course_name", name),
	}))
}

func (s *server) menteeCourseDetail(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	crs, err := s.opts.API.Mentee.GetCourseDetail(apiContext(ctx), id)
	if err != nil {
		return err
	}
	rec := contextSession(ctx)
	return ctx.Render(http.StatusOK, "mentee_course_detail", s.viewData(ctx, crs.Title(), echo.Map{
		"Course":     crs,
		"IsEnrolled": rec.IsEnrolled(id),
	}))
}

func (s *server) menteeEnroll(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	if err = s.opts.API.Mentee.EnrollCourse(apiContext(ctx), id); err != nil {
		if apiErr, ok := errors.Cause(err).(*lmsapi.APIError); ok {
			return ctx.Render(http.StatusOK, "mentee_enroll_confirm", s.viewData(ctx, "Enrollment", echo.Map{
				"CourseID": id,
				"Error":    apiErr.Message,
			}))
		}
		return err
	}
	rec := contextSession(ctx)
	rec.Enroll(id)
	if err = s.opts.Sessions.Save(ctx.Request().Context(), rec); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusFound, "/mentee/courses/"+strconv.Itoa(id)+"/enrolled")
}

// menteeEnrollConfirm shows the success note, then bounces back to the
// catalogue after a couple of seconds.
func (s *server) menteeEnrollConfirm(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "mentee_enroll_confirm", s.viewData(ctx, "Enrollment", echo.Map{
		"CourseID": id,
		"Next":     "/mentee/courses",
	}))
}

func (s *server) menteeUnenroll(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	if err = s.opts.API.Mentee.UnenrollCourse(apiContext(ctx), id); err != nil {
		return err
	}
	rec := contextSession(ctx)
	rec.Unenroll(id)
	if err = s.opts.Sessions.Save(ctx.Request().Context(), rec); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusFound, "/mentee/courses")
}

func (s *server) menteeMyCourses(ctx echo.Context) error {
	res, err := s.opts.API.Mentee.GetMyCourses(apiContext(ctx))
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "mentee_my_courses", s.viewData(ctx, "My courses", echo.Map{
		"Courses": res.Content,
	}))
}

// menteeCancelRegistration lists registered courses with a cancel action each.
func (s *server) menteeCancelRegistration(ctx echo.Context) error {
	res, err := s.opts.API.Mentee.GetMyCourses(apiContext(ctx))
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "mentee_cancel_registration", s.viewData(ctx, "Cancel registration", echo.Map{
		"Courses": res.Content,
	}))
}

// scheduleItem ties a session to the course it belongs to for the combined
// schedule across all registered courses.
type scheduleItem struct {
	Course  lmsapi.Course
	Session lmsapi.Session
}

func (s *server) menteeFullSchedule(ctx echo.Context) error {
	reqCtx := apiContext(ctx)
	courses, err := s.opts.API.Mentee.GetMyCourses(reqCtx)
	if err != nil {
		return err
	}
	var items []scheduleItem
	for _, crs := range courses.Content {
		sessions, err := s.opts.API.Mentee.GetSessions(reqCtx, crs.Key())
		if err != nil {
			return err
		}
		for _, sess := range sessions.Content {
			items = append(items, scheduleItem{Course: crs, Session: sess})
		}
	}
	return ctx.Render(http.StatusOK, "mentee_full_schedule", s.viewData(ctx, "Schedule", echo.Map{
		"Items": items,
	}))
}

func (s *server) menteeLessons(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	res, err := s.opts.API.Mentee.GetLessons(apiContext(ctx), id)
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "mentee_lessons", s.viewData(ctx, "Lessons", echo.Map{
		"CourseID": id,
		"Lessons":  res.Content,
	}))
}

// menteeCourseLesson serves the course-scoped deep link to a lesson.
func (s *server) menteeCourseLesson(ctx echo.Context) error {
	id, err := pathID(ctx, "lessonId")
	if err != nil {
		return err
	}
	return s.renderLesson(ctx, id)
}

func (s *server) menteeLessonDetail(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	return s.renderLesson(ctx, id)
}

func (s *server) renderLesson(ctx echo.Context, id int) error {
	reqCtx := apiContext(ctx)
	lsn, err := s.opts.API.Mentee.GetLesson(reqCtx, id)
	if err != nil {
		return err
	}
	resources, err := s.opts.API.Mentee.GetResources(reqCtx, id)
	if err != nil {
		return err
	}
	exercises, err := s.opts.API.Mentee.GetExercises(reqCtx, id)
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "mentee_lesson_detail", s.viewData(ctx, lsn.Title, echo.Map{
		"Lesson":    lsn,
		"Resources": resources.Content,
		"Exercises": exercises.Content,
	}))
}

func (s *server) menteeExercise(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	return s.renderExercise(ctx, id)
}

// menteeCourseExercise serves the course-scoped deep link to an exercise.
func (s *server) menteeCourseExercise(ctx echo.Context) error {
	id, err := pathID(ctx, "exerciseId")
	if err != nil {
		return err
	}
	return s.renderExercise(ctx, id)
}

func (s *server) renderExercise(ctx echo.Context, id int) error {
	reqCtx := apiContext(ctx)
	ex, err := s.opts.API.Mentee.GetExerciseDetail(reqCtx, id)
	if err != nil {
		return err
	}
	subs, err := s.opts.API.Mentee.GetSubmissions(reqCtx, id)
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "mentee_exercise", s.viewData(ctx, ex.Title, echo.Map{
		"Exercise":    ex,
		"Submissions": subs.Content,
		"CanSubmit":   ex.AttemptLimit == 0 || len(subs.Content) < ex.AttemptLimit,
	}))
}

func (s *server) menteeExerciseSubmit(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	var form SubmissionForm
	if err = ctx.Bind(&form); err != nil {
		return err
	}
	if err = form.Validate(); err != nil {
		return err
	}
	if _, err = s.opts.API.Mentee.SubmitExercise(apiContext(ctx), id, form); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusFound, "/mentee/exercises/"+strconv.Itoa(id))
}

func (s *server) menteeSchedule(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	res, err := s.opts.API.Mentee.GetSessions(apiContext(ctx), id)
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "mentee_schedule", s.viewData(ctx, "Schedule", echo.Map{
		"CourseID": id,
		"Sessions": res.Content,
	}))
}

func (s *server) menteeSessionDetail(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	return s.renderSession(ctx, id)
}

// menteeCourseSession serves the course-scoped deep link to a session.
func (s *server) menteeCourseSession(ctx echo.Context) error {
	id, err := pathID(ctx, "sessionId")
	if err != nil {
		return err
	}
	return s.renderSession(ctx, id)
}

func (s *server) renderSession(ctx echo.Context, id int) error {
	sess, err := s.opts.API.Mentee.GetSessionDetail(apiContext(ctx), id)
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "mentee_session_detail", s.viewData(ctx, sess.Title, echo.Map{
		"Session": sess,
	}))
}

// menteeCourseSessionForum lands on the session's forum when one exists and
// otherwise falls back to the session page, which offers to open one.
func (s *server) menteeCourseSessionForum(ctx echo.Context) error {
	id, err := pathID(ctx, "sessionId")
	if err != nil {
		return err
	}
	reqCtx := apiContext(ctx)
	sess, err := s.opts.API.Mentee.GetSessionDetail(reqCtx, id)
	if err != nil {
		return err
	}
	if sess.ForumID == 0 {
		return s.renderSession(ctx, id)
	}
	res, err := s.opts.API.Mentee.GetQuestionsByForum(reqCtx, sess.ForumID)
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "mentee_forum", s.viewData(ctx, "Forum", echo.Map{
		"ForumID":   sess.ForumID,
		"Questions": res.Content,
	}))
}

func (s *server) menteeRateSession(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	var form RatingForm
	if err = ctx.Bind(&form); err != nil {
		return err
	}
	if err = form.Validate(); err != nil {
		return err
	}
	if err = s.opts.API.Mentee.RateSession(apiContext(ctx), id, form.Score, form.Comment); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusFound, "/mentee/sessions/"+strconv.Itoa(id))
}

func (s *server) menteeRatings(ctx echo.Context) error {
	res, err := s.opts.API.Mentee.GetMyRatings(apiContext(ctx))
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "mentee_ratings", s.viewData(ctx, "My ratings", echo.Map{
		"Ratings": res.Content,
	}))
}

func (s *server) menteeForum(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	res, err := s.opts.API.Mentee.GetQuestionsByForum(apiContext(ctx), id)
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "mentee_forum", s.viewData(ctx, "Forum", echo.Map{
		"ForumID":   id,
		"Questions": res.Content,
	}))
}

func (s *server) menteeAskQuestion(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	var form QuestionForm
	if err = ctx.Bind(&form); err != nil {
		return err
	}
	if err = form.Validate(); err != nil {
		return err
	}
	if err = s.opts.API.Mentee.AskQuestion(apiContext(ctx), id, form.Content); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusFound, "/mentee/forums/"+strconv.Itoa(id))
}

// menteeCreateForum opens a forum for a session that has none yet, then lands
// on it.
func (s *server) menteeCreateForum(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	frm, err := s.opts.API.Mentee.CreateForum(apiContext(ctx), id)
	if err != nil {
		return err
	}
	return ctx.Redirect(http.StatusFound, "/mentee/forums/"+strconv.Itoa(frm.ID))
}

func (s *server) menteeQuestions(ctx echo.Context) error {
	res, err := s.opts.API.Mentee.GetMyQuestions(apiContext(ctx))
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "mentee_questions", s.viewData(ctx, "My questions", echo.Map{
		"Questions": res.Content,
	}))
}

func (s *server) menteeConversations(ctx echo.Context) error {
	rec := contextSession(ctx)
	res, err := s.opts.API.Mentee.GetMyConversations(apiContext(ctx), rec.User.ID)
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "mentee_conversations", s.viewData(ctx, "Messages", echo.Map{
		"Conversations": res.Content,
	}))
}

func (s *server) menteeMessages(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	rec := contextSession(ctx)
	res, err := s.opts.API.Mentee.GetMessages(apiContext(ctx), rec.User.ID, id)
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "mentee_messages", s.viewData(ctx, "Conversation", echo.Map{
		"ConversationID": id,
		"Messages":       res.Content,
		"ReceiverID":     queryInt(ctx, "receiverId", 0),
	}))
}

func (s *server) menteeSendMessage(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	var form QuestionForm // single required content field, same shape
	if err = ctx.Bind(&form); err != nil {
		return err
	}
	if err = form.Validate(); err != nil {
		return err
	}
	receiverID := queryInt(ctx, "receiverId", 0)
	rec := contextSession(ctx)
	if err = s.opts.API.Mentee.SendMessage(apiContext(ctx), rec.User.ID, id, receiverID, form.Content); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusFound, ctx.Request().URL.RequestURI())
}

func (s *server) menteeFeedback(ctx echo.Context) error {
	res, err := s.opts.API.Mentee.GetMyReportTickets(apiContext(ctx))
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "mentee_feedback", s.viewData(ctx, "Feedback", echo.Map{
		"Tickets": res.Content,
	}))
}

func (s *server) menteeFeedbackCreate(ctx echo.Context) error {
	var form TicketForm
	if err := ctx.Bind(&form); err != nil {
		return err
	}
	if err := form.Validate(); err != nil {
		return err
	}
	if _, err := s.opts.API.Mentee.CreateReportTicket(apiContext(ctx), form.Title, form.Description); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusFound, "/mentee/feedback")
}
