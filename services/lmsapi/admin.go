package lmsapi

import (
	"context"
	"fmt"
	"net/url"
)

// AdminAPI wraps the /admin/* endpoints.
type AdminAPI struct {
	c *Client
}

// User management

func (a *AdminAPI) GetUsers(ctx context.Context, page, size int, search, role string) (PagedResult[User], error) {
	var res PagedResult[User]
	q := listQuery(page, size, map[string]string{"search": search, "role": role})
	err := a.c.get(ctx, "/admin/manage-user", q, &res)
	return res, err
}

func (a *AdminAPI) CreateUser(ctx context.Context, name, email, password, role string) (*User, error) {
	payload := map[string]string{"name": name, "email": email, "password": password, "role": role}
	var usr User
	if err := a.c.post(ctx, "/admin/create-user", nil, payload, &usr); err != nil {
		return nil, err
	}
	return &usr, nil
}

func (a *AdminAPI) GetUser(ctx context.Context, userID int) (*User, error) {
	var usr User
	if err := a.c.get(ctx, fmt.Sprintf("/admin/get-user/%d", userID), nil, &usr); err != nil {
		return nil, err
	}
	return &usr, nil
}

func (a *AdminAPI) GetSubjectRegistrations(ctx context.Context) (PagedResult[SubjectRegistration], error) {
	var res PagedResult[SubjectRegistration]
	err := a.c.get(ctx, "/admin/subject-registrations", nil, &res)
	return res, err
}

// Course management

func (a *AdminAPI) GetCourses(ctx context.Context, page, size int, tutor, status, courseName string) (PagedResult[Course], error) {
	var res PagedResult[Course]
	q := listQuery(page, size, map[string]string{"tutor": tutor, "status": status, "course_name": courseName})
	err := a.c.get(ctx, "/admin/courses", q, &res)
	return res, err
}

func (a *AdminAPI) GetCourse(ctx context.Context, id int) (*Course, error) {
	var crs Course
	if err := a.c.get(ctx, fmt.Sprintf("/admin/courses/%d", id), nil, &crs); err != nil {
		return nil, err
	}
	return &crs, nil
}

func (a *AdminAPI) CreateCourse(ctx context.Context, payload interface{}) (*Course, error) {
	var crs Course
	if err := a.c.post(ctx, "/admin/courses", nil, payload, &crs); err != nil {
		return nil, err
	}
	return &crs, nil
}

func (a *AdminAPI) UpdateCourse(ctx context.Context, id int, payload interface{}) (*Course, error) {
	var crs Course
	if err := a.c.put(ctx, fmt.Sprintf("/admin/courses/%d", id), nil, payload, &crs); err != nil {
		return nil, err
	}
	return &crs, nil
}

// Report tickets

func (a *AdminAPI) CreateReportTicket(ctx context.Context, title, description, status string) (*ReportTicket, error) {
	if status == "" {
		status = "OPEN"
	}
	payload := map[string]string{"title": title, "description": description, "status": status}
	var tck ReportTicket
	if err := a.c.post(ctx, "/admin/report-tickets", nil, payload, &tck); err != nil {
		return nil, err
	}
	return &tck, nil
}

func (a *AdminAPI) GetReportTickets(ctx context.Context, page, size int) (PagedResult[ReportTicket], error) {
	var res PagedResult[ReportTicket]
	err := a.c.get(ctx, "/admin/report-tickets", listQuery(page, size, nil), &res)
	return res, err
}

func (a *AdminAPI) GetReportTicketsByStatus(ctx context.Context, status string) (PagedResult[ReportTicket], error) {
	var res PagedResult[ReportTicket]
	err := a.c.get(ctx, "/admin/report-tickets/status/"+url.PathEscape(status), nil, &res)
	return res, err
}

func (a *AdminAPI) UpdateReportTicket(ctx context.Context, ticketID int, status, adminResponse string) (*ReportTicket, error) {
	q := make(url.Values)
	q.Set("status", status)
	if adminResponse != "" {
		q.Set("adminResponse", adminResponse)
	}
	var tck ReportTicket
	if err := a.c.put(ctx, fmt.Sprintf("/admin/report-tickets/%d", ticketID), q, nil, &tck); err != nil {
		return nil, err
	}
	return &tck, nil
}

func (a *AdminAPI) DeleteReportTicket(ctx context.Context, ticketID int) error {
	return a.c.del(ctx, fmt.Sprintf("/admin/report-tickets/%d", ticketID))
}

// Announcements

func (a *AdminAPI) SendAnnouncementToAll(ctx context.Context, title, content string) error {
	payload := map[string]string{"title": title, "content": content, "recipientType": "ALL"}
	return a.c.post(ctx, "/admin/announcements/send-all", nil, payload, nil)
}

func (a *AdminAPI) SendAnnouncementToMentee(ctx context.Context, title, content string) error {
	payload := map[string]string{"title": title, "content": content, "recipientType": "MENTEE"}
	return a.c.post(ctx, "/admin/announcements/send-mentee", nil, payload, nil)
}

func (a *AdminAPI) SendAnnouncementToTutor(ctx context.Context, title, content string) error {
	payload := map[string]string{"title": title, "content": content, "recipientType": "TUTOR"}
	return a.c.post(ctx, "/admin/announcements/send-tutor", nil, payload, nil)
}

func (a *AdminAPI) SendAnnouncementToUser(ctx context.Context, userID int, title, content string) error {
	payload := map[string]interface{}{"title": title, "content": content, "recipientUserId": userID}
	return a.c.post(ctx, fmt.Sprintf("/admin/announcements/send-user/%d", userID), nil, payload, nil)
}

func (a *AdminAPI) GetAnnouncements(ctx context.Context, page, size int, recipientType, title, adminID string) (PagedResult[Announcement], error) {
	var res PagedResult[Announcement]
	q := listQuery(page, size, map[string]string{"recipientType": recipientType, "title": title, "adminId": adminID})
	err := a.c.get(ctx, "/admin/announcements", q, &res)
	return res, err
}

func (a *AdminAPI) GetAnnouncementsByAdmin(ctx context.Context, adminID, page, size int) (PagedResult[Announcement], error) {
	var res PagedResult[Announcement]
	err := a.c.get(ctx, fmt.Sprintf("/admin/announcements/admin/%d", adminID), listQuery(page, size, nil), &res)
	return res, err
}

func (a *AdminAPI) DeleteAnnouncement(ctx context.Context, announcementID int) error {
	return a.c.del(ctx, fmt.Sprintf("/admin/announcements/%d", announcementID))
}

// Analytics

func (a *AdminAPI) GetAllAnalytics(ctx context.Context) (*Analytics, error) {
	var an Analytics
	if err := a.c.get(ctx, "/admin/analytics", nil, &an); err != nil {
		return nil, err
	}
	return &an, nil
}

func (a *AdminAPI) GetSystemAnalytics(ctx context.Context) (*Analytics, error) {
	var an Analytics
	if err := a.c.get(ctx, "/admin/analytics/system", nil, &an); err != nil {
		return nil, err
	}
	return &an, nil
}

func (a *AdminAPI) GetStudentAnalytics(ctx context.Context) (*Analytics, error) {
	var an Analytics
	if err := a.c.get(ctx, "/admin/analytics/students", nil, &an); err != nil {
		return nil, err
	}
	return &an, nil
}

func (a *AdminAPI) GetTutorAnalytics(ctx context.Context) (*Analytics, error) {
	var an Analytics
	if err := a.c.get(ctx, "/admin/analytics/tutors", nil, &an); err != nil {
		return nil, err
	}
	return &an, nil
}

// Enrollments

func (a *AdminAPI) GetEnrollmentStats(ctx context.Context, courseID int) (*EnrollmentStats, error) {
	var stats EnrollmentStats
	if err := a.c.get(ctx, fmt.Sprintf("/admin/courses/%d/enrollments/stats", courseID), nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (a *AdminAPI) ApproveEnrollments(ctx context.Context, courseID int) error {
	return a.c.post(ctx, fmt.Sprintf("/admin/courses/%d/enrollments/approve", courseID), nil, nil, nil)
}
