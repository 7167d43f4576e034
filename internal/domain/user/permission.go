package user

type Permission string

const (
	// Self Management
	PermissionViewOwnProfile Permission = "profile.view_own"
	PermissionEditOwnProfile Permission = "profile.edit_own"

	// Attendance
	PermissionAttendanceClock   Permission = "attendance.clock"
	PermissionAttendanceViewAll Permission = "attendance.view_all"
	PermissionAttendanceManage  Permission = "attendance.manage"

	// Leave, expense and outing requests
	PermissionRequestCreate  Permission = "request.create"
	PermissionRequestViewAll Permission = "request.view_all"
	PermissionRequestApprove Permission = "request.approve"

	// Work diaries
	PermissionDiaryViewAll Permission = "diary.view_all"

	// Schedules
	PermissionScheduleViewAll Permission = "schedule.view_all"
	PermissionScheduleManage  Permission = "schedule.manage"

	// Administration
	PermissionUserManage     Permission = "user.manage"
	PermissionSettingsManage Permission = "settings.manage"
)

var employeePermissions = []Permission{
	PermissionViewOwnProfile,
	PermissionEditOwnProfile,
	PermissionAttendanceClock,
	PermissionRequestCreate,
}

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: append(append([]Permission{}, employeePermissions...),
		PermissionAttendanceViewAll,
		PermissionAttendanceManage,
		PermissionRequestViewAll,
		PermissionRequestApprove,
		PermissionDiaryViewAll,
		PermissionScheduleViewAll,
		PermissionScheduleManage,
		PermissionUserManage,
		PermissionSettingsManage,
	),
	// Managers decide requests but only see their own records.
	RoleManager: append(append([]Permission{}, employeePermissions...),
		PermissionRequestApprove,
	),
	RoleEmployee: employeePermissions,
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	for _, p := range RolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}
