package handler

type ContextKey string

var (
	RoleCtxKey            ContextKey = "role"
	SubCtxKey             ContextKey = "sub"
	MyInfoCtx             ContextKey = "myInfo"
	UserInfoCtx           ContextKey = "userInfo"
	ResidentCtx           ContextKey = "resident"
	RoomTypeCtx           ContextKey = "roomType"
	RoomCtx               ContextKey = "room"
	BedCtx                ContextKey = "bed"
	CarePlanCtx           ContextKey = "carePlan"
	BedAssignmentCtx      ContextKey = "bedAssignment"
	CarePlanAssignmentCtx ContextKey = "carePlanAssignment"
	ServiceRequestCtx     ContextKey = "serviceRequest"
)
