package api

// User is the public view of an account.
type User struct {
	Id          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	CreatedAt   int64  `json:"createdAt,omitempty"`
}

// Group is the public view of a group. IsAdmin is relative to the caller.
type Group struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	AdminId     string `json:"adminId"`
	CreatedAt   int64  `json:"createdAt"`
	LastDrawnAt int64  `json:"lastDrawnAt,omitempty"`
	DrawCount   int    `json:"drawCount"`
	IsAdmin     bool   `json:"isAdmin"`
}

// Member is one participant of a group. UserId is empty for guests.
type Member struct {
	Id         string `json:"id"`
	GroupId    string `json:"groupId"`
	UserId     string `json:"userId,omitempty"`
	Name       string `json:"name"`
	HasAccount bool   `json:"hasAccount"`
}

// JoinRequest is a pending or decided request to join a group.
type JoinRequest struct {
	Id        string `json:"id"`
	GroupId   string `json:"groupId"`
	GroupName string `json:"groupName,omitempty"`
	UserId    string `json:"userId"`
	UserName  string `json:"userName,omitempty"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"createdAt"`
}

// Assignment is the caller's own giver assignment in one group.
type Assignment struct {
	GroupId      string `json:"groupId"`
	GroupName    string `json:"groupName"`
	ReceiverId   string `json:"receiverId"`
	ReceiverName string `json:"receiverName"`
	DrawnAt      int64  `json:"drawnAt"`
}

// AuthService

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

type RegisterResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type LogoutRequest struct{}

type LogoutResponse struct{}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User *User `json:"user"`
}

// GroupService

type CreateGroupRequest struct {
	Name string `json:"name"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type GetGroupRequest struct {
	GroupId string `json:"groupId"`
}

type GetGroupResponse struct {
	Group   *Group    `json:"group"`
	Members []*Member `json:"members"`
}

type ListMyGroupsRequest struct{}

type ListMyGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

type SearchGroupsRequest struct {
	Query string `json:"query"`
}

type SearchGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

type AddMemberRequest struct {
	GroupId string `json:"groupId"`
	Name    string `json:"name"`
}

type AddMemberResponse struct {
	Member *Member `json:"member"`
}

type RemoveMemberRequest struct {
	MemberId string `json:"memberId"`
}

type RemoveMemberResponse struct{}

type RequestToJoinRequest struct {
	GroupId string `json:"groupId"`
}

type RequestToJoinResponse struct {
	Request *JoinRequest `json:"request"`
	// AlreadyRequested is true when the caller had asked to join before.
	AlreadyRequested bool `json:"alreadyRequested"`
}

type ListJoinRequestsRequest struct{}

type ListJoinRequestsResponse struct {
	Requests []*JoinRequest `json:"requests"`
}

type AcceptJoinRequestRequest struct {
	RequestId string `json:"requestId"`
}

type AcceptJoinRequestResponse struct {
	Member *Member `json:"member"`
}

type RejectJoinRequestRequest struct {
	RequestId string `json:"requestId"`
}

type RejectJoinRequestResponse struct{}

// SantaService

type RunDrawRequest struct {
	GroupId string `json:"groupId"`
}

// RunDrawResponse reports the size of the draw, never the mapping itself.
type RunDrawResponse struct {
	AssignmentCount int `json:"assignmentCount"`
	// SkippedMembers are the names of guests without an account.
	SkippedMembers []string `json:"skippedMembers,omitempty"`
	Attempts       int      `json:"attempts"`
}

type GetMyAssignmentsRequest struct {
	// GroupId limits the result to one group when set.
	GroupId string `json:"groupId,omitempty"`
}

type GetMyAssignmentsResponse struct {
	Assignments []*Assignment `json:"assignments"`
}
