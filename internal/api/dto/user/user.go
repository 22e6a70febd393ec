package user

type UserResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type DeleteRequest struct {
	Email string `json:"email"`
}

type DeleteResponse struct {
	DeletedTransactions int64 `json:"deletedTransactions"`
	DeletedFromGroup    bool  `json:"deletedFromGroup"`
}
