package echoportal

import (
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/darasa-lms/portal/core/session"
	"github.com/darasa-lms/portal/services/lmsapi"
)

func (s *server) registerAdminPages() {
	g := s.app.Group("/admin", s.guard("/admin", session.RoleAdmin))

	g.GET("", s.adminDashboard)
	g.GET("/analytics", s.adminAnalytics)

	g.GET("/users", s.adminUsers)
	g.GET("/users/new", s.adminUserNew)
	g.POST("/users/new", s.adminUserCreate)
	g.GET("/users/:id", s.adminUserDetail)

	g.GET("/courses", s.adminCourses)
	g.GET("/courses/new", s.adminCourseNew)
	g.POST("/courses/new", s.adminCourseCreate)
	g.GET("/courses/:id", s.adminCourseDetail)
	g.GET("/courses/:id/edit", s.adminCourseEdit)
	g.POST("/courses/:id/edit", s.adminCourseUpdate)
	g.POST("/courses/:id/approve", s.adminCourseApprove)

	g.GET("/subject-registrations", s.adminSubjectRegistrations)

	g.GET("/feedback", s.adminFeedback)
	g.POST("/feedback/new", s.adminFeedbackCreate)
	g.POST("/feedback/:id", s.adminFeedbackUpdate)
	g.POST("/feedback/:id/delete", s.adminFeedbackDelete)

	g.GET("/notifications", s.adminNotifications)
	g.POST("/notifications/send", s.adminNotificationSend)
	g.POST("/notifications/:id/delete", s.adminNotificationDelete)
}

// pathID parses a numeric :param, 404-ing on garbage.
func pathID(ctx echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(ctx.Param(name))
	if err != nil || id <= 0 {
		return 0, errHTTPNotFound
	}
	return id, nil
}

func queryInt(ctx echo.Context, name string, fallback int) int {
	if raw := ctx.QueryParam(name); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
	}
	return fallback
}

// filterQuery re-encodes the active filters as a query-string tail so that
// pagination links keep them. Blank values are dropped. The tail is typed
// template.URL so the renderer keeps the separators intact; the values are
// already encoded here.
func filterQuery(pairs ...string) template.URL {
	q := make(url.Values)
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] != "" {
			q.Set(pairs[i], pairs[i+1])
		}
	}
	if len(q) == 0 {
		return ""
	}
	return template.URL("&" + q.Encode())
}

func (s *server) adminDashboard(ctx echo.Context) error {
	an, err := s.opts.API.Admin.GetAllAnalytics(apiContext(ctx))
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "admin_dashboard", s.viewData(ctx, "Admin dashboard", echo.Map{
		"Analytics": an,
		"BackTrap":  s.opts.BackTrap,
	}))
}

func (s *server) adminAnalytics(ctx echo.Context) error {
	api := s.opts.API.Admin
	reqCtx := apiContext(ctx)

	system, err := api.GetSystemAnalytics(reqCtx)
	if err != nil {
		return err
	}
	students, err := api.GetStudentAnalytics(reqCtx)
	if err != nil {
		return err
	}
	tutors, err := api.GetTutorAnalytics(reqCtx)
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "admin_analytics", s.viewData(ctx, "Analytics", echo.Map{
		"System":   system,
		"Students": students,
		"Tutors":   tutors,
	}))
}

func (s *server) adminUsers(ctx echo.Context) error {
	page := queryInt(ctx, "page", 0)
	search := ctx.QueryParam("search")
	role := ctx.QueryParam("role")

	res, err := s.opts.API.Admin.GetUsers(apiContext(ctx), page, 10, search, role)
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "admin_users", s.viewData(ctx, "Manage users", echo.Map{
		"Users":      res.Content,
		"Page":       page,
		"TotalPages": res.TotalPages,
		"TotalItems": res.TotalItems,
		"Search":     search,
		"Role":       role,
		"Query":      filterQuery("search", search, "role", role),
	}))
}

func (s *server) adminUserNew(ctx echo.Context) error {
	return ctx.Render(http.StatusOK, "admin_user_form", s.viewData(ctx, "Create user", nil))
}

func (s *server) adminUserCreate(ctx echo.Context) error {
	var form UserForm
	if err := ctx.Bind(&form); err != nil {
		return err
	}
	if err := form.Validate(); err != nil {
		return err
	}
	if _, err := s.opts.API.Admin.CreateUser(apiContext(ctx), form.Name, form.Email, form.Password, form.Role); err != nil {
		if apiErr, ok := errors.Cause(err).(*lmsapi.APIError); ok {
			return ctx.Render(http.StatusBadRequest, "admin_user_form", s.viewData(ctx, "Create user", echo.Map{
				"Error": apiErr.Message,
				"Form":  form,
			}))
		}
		return err
	}
	return ctx.Redirect(http.StatusFound, "/admin/users")
}

func (s *server) adminUserDetail(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	usr, err := s.opts.API.Admin.GetUser(apiContext(ctx), id)
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "admin_user_detail", s.viewData(ctx, usr.Name, echo.Map{
		"Target": usr,
	}))
}

func (s *server) adminCourses(ctx echo.Context) error {
	page := queryInt(ctx, "page", 0)
	tutor := ctx.QueryParam("tutor")
	status := ctx.QueryParam("status")
	name := ctx.QueryParam("course_name")

	res, err := s.opts.API.Admin.GetCourses(apiContext(ctx), page, 10, tutor, status, name)
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "admin_courses", s.viewData(ctx, "Manage courses", echo.Map{
		"Courses":    res.Content,
		"Page":       page,
		"TotalPages": res.TotalPages,
		"TotalItems": res.TotalItems,
		"Tutor":      tutor,
		"Status":     status,
		"CourseName": name,
		"Query":      filterQuery("tutor", tutor, "status", status, "course_name", name),
	}))
}

func (s *server) adminCourseNew(ctx echo.Context) error {
	return ctx.Render(http.StatusOK, "admin_course_form", s.viewData(ctx, "Create course", nil))
}

func (s *server) adminCourseCreate(ctx echo.Context) error {
	var form CourseForm
	if err := ctx.Bind(&form); err != nil {
		return err
	}
	if err := form.Validate(); err != nil {
		return err
	}
	crs, err := s.opts.API.Admin.CreateCourse(apiContext(ctx), form)
	if err != nil {
		return err
	}
	return ctx.Redirect(http.StatusFound, "/admin/courses/"+strconv.Itoa(crs.Key()))
}

func (s *server) adminCourseDetail(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	reqCtx := apiContext(ctx)
	crs, err := s.opts.API.Admin.GetCourse(reqCtx, id)
	if err != nil {
		return err
	}
	// stats are decoration, a failure must not sink the page
	stats, err := s.opts.API.Admin.GetEnrollmentStats(reqCtx, id)
	if err != nil {
		stats = nil
	}
	return ctx.Render(http.StatusOK, "admin_course_detail", s.viewData(ctx, crs.Title(), echo.Map{
		"Course": crs,
		"Stats":  stats,
	}))
}

func (s *server) adminCourseEdit(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	crs, err := s.opts.API.Admin.GetCourse(apiContext(ctx), id)
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "admin_course_form", s.viewData(ctx, "Edit course", echo.Map{
		"Course": crs,
	}))
}

func (s *server) adminCourseUpdate(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	var form CourseForm
	if err = ctx.Bind(&form); err != nil {
		return err
	}
	if err = form.Validate(); err != nil {
		return err
	}
	if _, err = s.opts.API.Admin.UpdateCourse(apiContext(ctx), id, form); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusFound, "/admin/courses/"+strconv.Itoa(id))
}

func (s *server) adminCourseApprove(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	if err = s.opts.API.Admin.ApproveEnrollments(apiContext(ctx), id); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusFound, "/admin/courses/"+strconv.Itoa(id))
}

func (s *server) adminSubjectRegistrations(ctx echo.Context) error {
	res, err := s.opts.API.Admin.GetSubjectRegistrations(apiContext(ctx))
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "admin_subject_registrations", s.viewData(ctx, "Subject registrations", echo.Map{
		"Registrations": res.Content,
	}))
}

func (s *server) adminFeedback(ctx echo.Context) error {
	page := queryInt(ctx, "page", 0)
	status := ctx.QueryParam("status")

	var (
		res lmsapi.PagedResult[lmsapi.ReportTicket]
		err error
	)
	if status != "" {
		res, err = s.opts.API.Admin.GetReportTicketsByStatus(apiContext(ctx), status)
	} else {
		res, err = s.opts.API.Admin.GetReportTickets(apiContext(ctx), page, 10)
	}
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "admin_feedback", s.viewData(ctx, "Feedback", echo.Map{
		"Tickets":    res.Content,
		"Page":       page,
		"TotalPages": res.TotalPages,
		"Status":     status,
		"Query":      filterQuery("status", status),
	}))
}

func (s *server) adminFeedbackCreate(ctx echo.Context) error {
	var form TicketForm
	if err := ctx.Bind(&form); err != nil {
		return err
	}
	if err := form.Validate(); err != nil {
		return err
	}
	if _, err := s.opts.API.Admin.CreateReportTicket(apiContext(ctx), form.Title, form.Description, ""); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusFound, "/admin/feedback")
}

func (s *server) adminFeedbackUpdate(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	var form TicketUpdateForm
	if err = ctx.Bind(&form); err != nil {
		return err
	}
	if err = form.Validate(); err != nil {
		return err
	}
	if _, err = s.opts.API.Admin.UpdateReportTicket(apiContext(ctx), id, form.Status, form.AdminResponse); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusFound, "/admin/feedback")
}

func (s *server) adminFeedbackDelete(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	if err = s.opts.API.Admin.DeleteReportTicket(apiContext(ctx), id); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusFound, "/admin/feedback")
}

func (s *server) adminNotifications(ctx echo.Context) error {
	page := queryInt(ctx, "page", 0)
	recipientType := ctx.QueryParam("recipientType")
	title := ctx.QueryParam("title")

	res, err := s.opts.API.Admin.GetAnnouncements(apiContext(ctx), page, 10, recipientType, title, "")
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "admin_notifications", s.viewData(ctx, "Notifications", echo.Map{
		"Announcements": res.Content,
		"Page":          page,
		"TotalPages":    res.TotalPages,
		"RecipientType": recipientType,
		"TitleFilter":   title,
		"Query":         filterQuery("recipientType", recipientType, "title", title),
	}))
}

func (s *server) adminNotificationSend(ctx echo.Context) error {
	var form AnnouncementForm
	if err := ctx.Bind(&form); err != nil {
		return err
	}
	if err := form.Validate(); err != nil {
		return err
	}

	api := s.opts.API.Admin
	reqCtx := apiContext(ctx)
	var err error
	switch form.RecipientType {
	case "ALL":
		err = api.SendAnnouncementToAll(reqCtx, form.Title, form.Content)
	case "MENTEE":
		err = api.SendAnnouncementToMentee(reqCtx, form.Title, form.Content)
	case "TUTOR":
		err = api.SendAnnouncementToTutor(reqCtx, form.Title, form.Content)
	case "USER":
		err = api.SendAnnouncementToUser(reqCtx, form.RecipientID, form.Title, form.Content)
	}
	if err != nil {
		return err
	}
	return ctx.Redirect(http.StatusFound, "/admin/notifications")
}

func (s *server) adminNotificationDelete(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	if err = s.opts.API.Admin.DeleteAnnouncement(apiContext(ctx), id); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusFound, "/admin/notifications")
}
