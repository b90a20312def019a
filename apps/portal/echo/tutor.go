package echoportal

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/darasa-lms/portal/core/session"
	"github.com/darasa-lms/portal/services/lmsapi"
)

// The tutor area is a single shell at /tutor whose sub-view is picked by the
// ?page= query param, so every workspace state stays a shareable deep link
// (e.g. /tutor?page=course-detail&courseId=7).
func (s *server) registerTutorPages() {
	g := s.app.Group("/tutor", s.guard("/tutor", session.RoleTutor))

	g.GET("", s.tutorShell)

	g.POST("/courses", s.tutorCourseCreate)
	g.POST("/lessons", s.tutorLessonCreate)
	g.POST("/lessons/:id", s.tutorLessonUpdate)
	g.POST("/courses/:id/sessions", s.tutorSessionCreate)
	g.POST("/courses/:id/sessions/update", s.tutorSessionUpdate)
	g.POST("/exercises", s.tutorExerciseCreate)
	g.POST("/exercises/:id/delete", s.tutorExerciseDelete)
	g.POST("/submissions/:id/grade", s.tutorGradeSubmission)
	g.POST("/ratings/:id/reply", s.tutorReplyRating)
	g.POST("/ratings/:id/report", s.tutorReportRating)
	g.POST("/resources", s.tutorResourceCreate)
	g.POST("/resources/:id", s.tutorResourceUpdate)
	g.POST("/resources/:id/delete", s.tutorResourceDelete)
	g.POST("/subject-registrations", s.tutorSubjectRegistrationCreate)
	g.POST("/sessions/:id/forum", s.tutorForumCreate)
	g.POST("/forums/:id/questions", s.tutorAskQuestion)
	g.POST("/questions/:id/answer", s.tutorAnswerQuestion)
	g.POST("/conversations/join", s.tutorJoinConversation)
	g.POST("/conversations/:id/messages", s.tutorSendMessage)
}

// tutorLink builds a deep link back into the shell.
func tutorLink(page string, params ...interface{}) string {
	link := "/tutor?page=" + page
	for i := 0; i+1 < len(params); i += 2 {
		link += fmt.Sprintf("&%v=%v", params[i], params[i+1])
	}
	return link
}

// tutorShell resolves the sub-view; anything it does not recognise lands on
// the dashboard, so stale or mistyped deep links never dead-end.
func (s *server) tutorShell(ctx echo.Context) error {
	view, ok := s.tutorViews()[ctx.QueryParam("page")]
	if !ok {
		view = s.tutorDashboard
	}
	return view(ctx)
}

func (s *server) tutorViews() map[string]echo.HandlerFunc {
	return map[string]echo.HandlerFunc{
		"dashboard":       s.tutorDashboard,
		"courses":         s.tutorCourses,
		"course-detail":   s.tutorCourseDetail,
		"students":        s.tutorStudents,
		"lessons":         s.tutorLessons,
		"lesson":          s.tutorLessonDetail,
		"assignments":     s.tutorAssignments,
		"exercise-detail": s.tutorExerciseDetail,
		"submissions":     s.tutorSubmissions,
		"sessions":        s.tutorSessions,
		"session":         s.tutorSessionDetail,
		"ratings":         s.tutorRatings,
		"forum":           s.tutorForum,
		"reports":         s.tutorReports,
		"announcements":   s.tutorAnnouncements,
		"registrations":   s.tutorRegistrations,
		"documents":       s.tutorDocuments,
		"messages":        s.tutorMessages,
	}
}

// tutorView wraps viewData with the keys the shell template needs to highlight
// the active sub-view.
func (s *server) tutorView(ctx echo.Context, page, title string, extra echo.Map) echo.Map {
	data := s.viewData(ctx, title, extra)
	data["Page"] = page
	return data
}

func requiredQueryID(ctx echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(ctx.QueryParam(name))
	if err != nil || id <= 0 {
		return 0, errHTTPNotFound
	}
	return id, nil
}

// Sub-views

func (s *server) tutorDashboard(ctx echo.Context) error {
	reqCtx := apiContext(ctx)
	courses, err := s.opts.API.Tutor.GetMyCourses(reqCtx)
	if err != nil {
		return err
	}
	exercises, err := s.opts.API.Tutor.GetMyExercises(reqCtx)
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "tutor_dashboard", s.tutorView(ctx, "dashboard", "Workspace", echo.Map{
		"Courses":       courses.Content,
		"ExerciseCount": len(exercises.Content),
		"BackTrap":      s.opts.BackTrap,
	}))
}

func (s *server) tutorCourses(ctx echo.Context) error {
	res, err := s.opts.API.Tutor.GetMyCourses(apiContext(ctx))
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "tutor_courses", s.tutorView(ctx, "courses", "My courses", echo.Map{
		"Courses": res.Content,
	}))
}

func (s *server) tutorCourseDetail(ctx echo.Context) error {
	courseID, err := requiredQueryID(ctx, "courseId")
	if err != nil {
		return err
	}
	reqCtx := apiContext(ctx)
	crs, err := s.opts.API.Tutor.GetCourse(reqCtx, courseID)
	if err != nil {
		return err
	}
	lessons, err := s.opts.API.Tutor.GetLessonsByCourse(reqCtx, courseID)
	if err != nil {
		return err
	}
	sessions, err := s.opts.API.Tutor.GetSessionsByCourse(reqCtx, courseID)
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "tutor_course_detail", s.tutorView(ctx, "course-detail", crs.Title(), echo.Map{
		"Course":   crs,
		"Lessons":  lessons.Content,
		"Sessions": sessions.Content,
	}))
}

// studentGroup pairs a course with its enrolled mentees for the roster view.
type studentGroup struct {
	Course  lmsapi.Course
	Mentees []lmsapi.User
}

// tutorStudents lists one course's mentees when courseId is given, otherwise
// the roster of every course the tutor teaches.
func (s *server) tutorStudents(ctx echo.Context) error {
	reqCtx := apiContext(ctx)

	if courseID := queryInt(ctx, "courseId", 0); courseID > 0 {
		page := queryInt(ctx, "p", 0)
		res, err := s.opts.API.Tutor.GetMenteesInCourse(reqCtx, courseID, page, 10)
		if err != nil {
			return err
		}
		return ctx.Render(http.StatusOK, "tutor_students", s.tutorView(ctx, "students", "Students", echo.Map{
			"CourseID":   courseID,
			"Mentees":    res.Content,
			"PageNum":    page,
			"TotalPages": res.TotalPages,
		}))
	}

	courses, err := s.opts.API.Tutor.GetMyCourses(reqCtx)
	if err != nil {
		return err
	}
	groups := make([]studentGroup, 0, len(courses.Content))
	for _, crs := range courses.Content {
		mentees, err := s.opts.API.Tutor.GetMenteesInCourse(reqCtx, crs.Key(), 0, 50)
		if err != nil {
			return err
		}
		groups = append(groups, studentGroup{Course: crs, Mentees: mentees.Content})
	}
	return ctx.Render(http.StatusOK, "tutor_students", s.tutorView(ctx, "students", "Students", echo.Map{
		"Groups": groups,
	}))
}

func (s *server) tutorLessons(ctx echo.Context) error {
	courseID, err := requiredQueryID(ctx, "courseId")
	if err != nil {
		return err
	}
	res, err := s.opts.API.Tutor.GetLessonsByCourse(apiContext(ctx), courseID)
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "tutor_lessons", s.tutorView(ctx, "lessons", "Lessons", echo.Map{
		"CourseID": courseID,
		"Lessons":  res.Content,
	}))
}

func (s *server) tutorLessonDetail(ctx echo.Context) error {
	courseID, err := requiredQueryID(ctx, "courseId")
	if err != nil {
		return err
	}
	lessonID, err := requiredQueryID(ctx, "lessonId")
	if err != nil {
		return err
	}
	reqCtx := apiContext(ctx)
	lsn, err := s.opts.API.Tutor.GetLessonDetail(reqCtx, courseID, lessonID)
	if err != nil {
		return err
	}
	resources, err := s.opts.API.Tutor.GetResources(reqCtx, lessonID)
	if err != nil {
		return err
	}
	exercises, err := s.opts.API.Tutor.GetExercises(reqCtx, lessonID)
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "tutor_lesson_detail", s.tutorView(ctx, "lesson", lsn.Title, echo.Map{
		"CourseID":  courseID,
		"Lesson":    lsn,
		"Resources": resources.Content,
		"Exercises": exercises.Content,
	}))
}

func (s *server) tutorAssignments(ctx echo.Context) error {
	lessonID := queryInt(ctx, "lessonId", 0)
	reqCtx := apiContext(ctx)

	if lessonID > 0 {
		res, err := s.opts.API.Tutor.GetExercises(reqCtx, lessonID)
		if err != nil {
			return err
		}
		return ctx.Render(http.StatusOK, "tutor_assignments", s.tutorView(ctx, "assignments", "Assignments", echo.Map{
			"LessonID":  lessonID,
			"Exercises": res.Content,
		}))
	}
	res, err := s.opts.API.Tutor.GetMyExercises(reqCtx)
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "tutor_assignments", s.tutorView(ctx, "assignments", "My assignments", echo.Map{
		"Exercises": res.Content,
	}))
}

func (s *server) tutorExerciseDetail(ctx echo.Context) error {
	exerciseID, err := requiredQueryID(ctx, "exerciseId")
	if err != nil {
		return err
	}
	ex, err := s.opts.API.Tutor.GetExerciseDetail(apiContext(ctx), exerciseID)
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "tutor_exercise_detail", s.tutorView(ctx, "exercise-detail", ex.Title, echo.Map{
		"Exercise": ex,
	}))
}

func (s *server) tutorSubmissions(ctx echo.Context) error {
	exerciseID, err := requiredQueryID(ctx, "exerciseId")
	if err != nil {
		return err
	}
	page := queryInt(ctx, "p", 0)
	res, err := s.opts.API.Tutor.GetSubmissions(apiContext(ctx), exerciseID, page, 10)
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "tutor_submissions", s.tutorView(ctx, "submissions", "Submissions", echo.Map{
		"ExerciseID":  exerciseID,
		"Submissions": res.Content,
		"PageNum":     page,
		"TotalPages":  res.TotalPages,
	}))
}

func (s *server) tutorSessions(ctx echo.Context) error {
	courseID, err := requiredQueryID(ctx, "courseId")
	if err != nil {
		return err
	}
	res, err := s.opts.API.Tutor.GetSessionsByCourse(apiContext(ctx), courseID)
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "tutor_sessions", s.tutorView(ctx, "sessions", "Sessions", echo.Map{
		"CourseID": courseID,
		"Sessions": res.Content,
	}))
}

func (s *server) tutorSessionDetail(ctx echo.Context) error {
	sessionID, err := requiredQueryID(ctx, "sessionId")
	if err != nil {
		return err
	}
	sess, err := s.opts.API.Tutor.GetSessionDetail(apiContext(ctx), sessionID)
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "tutor_session_detail", s.tutorView(ctx, "session", sess.Title, echo.Map{
		"Session": sess,
	}))
}

func (s *server) tutorRatings(ctx echo.Context) error {
	sessionID, err := requiredQueryID(ctx, "sessionId")
	if err != nil {
		return err
	}
	page := queryInt(ctx, "p", 0)
	res, err := s.opts.API.Tutor.GetRatings(apiContext(ctx), sessionID, page, 10)
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "tutor_ratings", s.tutorView(ctx, "ratings", "Ratings", echo.Map{
		"SessionID":  sessionID,
		"Ratings":    res.Content,
		"PageNum":    page,
		"TotalPages": res.TotalPages,
	}))
}

func (s *server) tutorForum(ctx echo.Context) error {
	forumID, err := requiredQueryID(ctx, "forumId")
	if err != nil {
		return err
	}
	res, err := s.opts.API.Tutor.GetQuestionsByForum(apiContext(ctx), forumID)
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "tutor_forum", s.tutorView(ctx, "forum", "Forum", echo.Map{
		"ForumID":   forumID,
		"Questions": res.Content,
	}))
}

func (s *server) tutorAnnouncements(ctx echo.Context) error {
	page := queryInt(ctx, "p", 0)
	res, err := s.opts.API.Tutor.GetAnnouncements(apiContext(ctx), page, 10, "", "", "")
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "tutor_announcements", s.tutorView(ctx, "announcements", "Announcements", echo.Map{
		"Announcements": res.Content,
		"PageNum":       page,
		"TotalPages":    res.TotalPages,
	}))
}

// tutorReports summarises grading progress across the tutor's exercises.
func (s *server) tutorReports(ctx echo.Context) error {
	reqCtx := apiContext(ctx)
	courses, err := s.opts.API.Tutor.GetMyCourses(reqCtx)
	if err != nil {
		return err
	}
	exercises, err := s.opts.API.Tutor.GetMyExercises(reqCtx)
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "tutor_reports", s.tutorView(ctx, "reports", "Reports", echo.Map{
		"Courses":   courses.Content,
		"Exercises": exercises.Content,
	}))
}

func (s *server) tutorRegistrations(ctx echo.Context) error {
	reqCtx := apiContext(ctx)
	subjects, err := s.opts.API.Tutor.GetAvailableSubjects(reqCtx)
	if err != nil {
		return err
	}
	registrations, err := s.opts.API.Tutor.GetSubjectRegistrations(reqCtx)
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "tutor_registrations", s.tutorView(ctx, "registrations", "Subject registrations", echo.Map{
		"Subjects":      subjects.Content,
		"Registrations": registrations.Content,
	}))
}

func (s *server) tutorDocuments(ctx echo.Context) error {
	res, err := s.opts.API.Tutor.GetMyResources(apiContext(ctx))
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "tutor_documents", s.tutorView(ctx, "documents", "My documents", echo.Map{
		"Resources": res.Content,
	}))
}

func (s *server) tutorMessages(ctx echo.Context) error {
	conversationID := queryInt(ctx, "conversationId", 0)
	return ctx.Render(http.StatusOK, "tutor_messages", s.tutorView(ctx, "messages", "Messages", echo.Map{
		"ConversationID": conversationID,
	}))
}

// Mutations. Each redirects back to the deep link of the view it belongs to.

func (s *server) tutorCourseCreate(ctx echo.Context) error {
	var form CourseForm
	if err := ctx.Bind(&form); err != nil {
		return err
	}
	if err := form.Validate(); err != nil {
		return err
	}
	crs, err := s.opts.API.Tutor.CreateCourse(apiContext(ctx), form)
	if err != nil {
		return err
	}
	return ctx.Redirect(http.StatusFound, tutorLink("course-detail", "courseId", crs.Key()))
}

func (s *server) tutorLessonCreate(ctx echo.Context) error {
	var form LessonForm
	if err := ctx.Bind(&form); err != nil {
		return err
	}
	if err := form.Validate(); err != nil {
		return err
	}
	if _, err := s.opts.API.Tutor.CreateLesson(apiContext(ctx), form); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusFound, tutorLink("lessons", "courseId", form.CourseID))
}

func (s *server) tutorLessonUpdate(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	var form LessonForm
	if err = ctx.Bind(&form); err != nil {
		return err
	}
	if err = form.Validate(); err != nil {
		return err
	}
	if _, err = s.opts.API.Tutor.UpdateLesson(apiContext(ctx), id, form); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusFound, tutorLink("lesson", "courseId", form.CourseID, "lessonId", id))
}

func (s *server) tutorSessionCreate(ctx echo.Context) error {
	courseID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	var form SessionForm
	if err = ctx.Bind(&form); err != nil {
		return err
	}
	form.CourseID = courseID
	if err = form.Validate(); err != nil {
		return err
	}
	if _, err = s.opts.API.Tutor.CreateSession(apiContext(ctx), courseID, form); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusFound, tutorLink("sessions", "courseId", courseID))
}

func (s *server) tutorSessionUpdate(ctx echo.Context) error {
	courseID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	var form SessionForm
	if err = ctx.Bind(&form); err != nil {
		return err
	}
	form.CourseID = courseID
	if err = form.Validate(); err != nil {
		return err
	}
	if _, err = s.opts.API.Tutor.UpdateSession(apiContext(ctx), courseID, form); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusFound, tutorLink("sessions", "courseId", courseID))
}

func (s *server) tutorExerciseCreate(ctx echo.Context) error {
	var form ExerciseForm
	if err := ctx.Bind(&form); err != nil {
		return err
	}
	if err := form.Validate(); err != nil {
		return err
	}
	if _, err := s.opts.API.Tutor.CreateExercise(apiContext(ctx), form); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusFound, tutorLink("assignments", "lessonId", form.LessonID))
}

func (s *server) tutorExerciseDelete(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	if err = s.opts.API.Tutor.DeleteExercise(apiContext(ctx), id); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusFound, tutorLink("assignments"))
}

func (s *server) tutorGradeSubmission(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	var form GradeForm
	if err = ctx.Bind(&form); err != nil {
		return err
	}
	if err = form.Validate(); err != nil {
		return err
	}
	if err = s.opts.API.Tutor.GradeSubmission(apiContext(ctx), id, form.Grade); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusFound, tutorLink("submissions", "exerciseId", queryInt(ctx, "exerciseId", 0)))
}

func (s *server) tutorReplyRating(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	reply := ctx.FormValue("reply")
	if reply == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "reply is required")
	}
	if err = s.opts.API.Tutor.ReplyRating(apiContext(ctx), id, reply); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusFound, tutorLink("ratings", "sessionId", queryInt(ctx, "sessionId", 0)))
}

func (s *server) tutorReportRating(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	var form TicketForm
	if err = ctx.Bind(&form); err != nil {
		return err
	}
	if err = form.Validate(); err != nil {
		return err
	}
	if err = s.opts.API.Tutor.ReportRating(apiContext(ctx), id, form.Title, form.Description); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusFound, tutorLink("ratings", "sessionId", queryInt(ctx, "sessionId", 0)))
}

func (s *server) tutorResourceCreate(ctx echo.Context) error {
	var form ResourceForm
	if err := ctx.Bind(&form); err != nil {
		return err
	}
	if err := form.Validate(); err != nil {
		return err
	}
	if _, err := s.opts.API.Tutor.CreateResource(apiContext(ctx), form); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusFound, tutorLink("documents"))
}

func (s *server) tutorResourceUpdate(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	var form ResourceForm
	if err = ctx.Bind(&form); err != nil {
		return err
	}
	if err = form.Validate(); err != nil {
		return err
	}
	if _, err = s.opts.API.Tutor.UpdateResource(apiContext(ctx), id, form); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusFound, tutorLink("documents"))
}

func (s *server) tutorResourceDelete(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	if err = s.opts.API.Tutor.DeleteResource(apiContext(ctx), id); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusFound, tutorLink("documents"))
}

func (s *server) tutorSubjectRegistrationCreate(ctx echo.Context) error {
	var form SubjectRegistrationForm
	if err := ctx.Bind(&form); err != nil {
		return err
	}
	if err := form.Validate(); err != nil {
		return err
	}
	if _, err := s.opts.API.Tutor.CreateSubjectRegistration(apiContext(ctx), form); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusFound, tutorLink("registrations"))
}

func (s *server) tutorForumCreate(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	frm, err := s.opts.API.Tutor.CreateForum(apiContext(ctx), id)
	if err != nil {
		return err
	}
	return ctx.Redirect(http.StatusFound, tutorLink("forum", "forumId", frm.ID))
}

func (s *server) tutorAskQuestion(ctx echo.Context) error {
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
	if err = s.opts.API.Tutor.AskQuestion(apiContext(ctx), id, form.Content); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusFound, tutorLink("forum", "forumId", id))
}

func (s *server) tutorAnswerQuestion(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	answer := ctx.FormValue("answer")
	if answer == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "answer is required")
	}
	if err = s.opts.API.Tutor.AnswerQuestion(apiContext(ctx), id, map[string]string{"answer": answer}); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusFound, tutorLink("forum", "forumId", queryInt(ctx, "forumId", 0)))
}

func (s *server) tutorJoinConversation(ctx echo.Context) error {
	menteeID := queryInt(ctx, "menteeId", 0)
	if menteeID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "menteeId is required")
	}
	rec := contextSession(ctx)
	conv, err := s.opts.API.Tutor.JoinConversation(apiContext(ctx), menteeID, rec.User.ID)
	if err != nil {
		return err
	}
	return ctx.Redirect(http.StatusFound, tutorLink("messages", "conversationId", conv.ID))
}

func (s *server) tutorSendMessage(ctx echo.Context) error {
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
	rec := contextSession(ctx)
	if err = s.opts.API.Tutor.SendMessage(apiContext(ctx), id, rec.User.ID, form.Content); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusFound, tutorLink("messages", "conversationId", id))
}
