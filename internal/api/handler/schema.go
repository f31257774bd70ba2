package handler

// ErrorResponse is the standard error envelope returned on all 4xx/5xx
// responses. Field is set for validation errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type signupRequest struct {
	Email     string `json:"email"     validate:"required,max=254,email"`
	Password  string `json:"password"  validate:"required,min=5,max=72"`
	Username  string `json:"username"  validate:"required,max=150"`
	FirstName string `json:"firstName" validate:"max=150"`
	LastName  string `json:"lastName"  validate:"max=150"`
}

type signinRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

type tokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// --- Users ---

type updateProfileRequest struct {
	Email     *string `json:"email"     validate:"omitempty,max=254,email"`
	Username  *string `json:"username"  validate:"omitempty,min=1,max=150"`
	FirstName *string `json:"firstName" validate:"omitempty,max=150"`
	LastName  *string `json:"lastName"  validate:"omitempty,max=150"`
	Password  *string `json:"password"  validate:"omitempty,min=5,max=72"`
}

// profileResponse is the exact field set of the profile endpoint.
type profileResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type userDetailResponse struct {
	profileResponse
	Questions []questionResponse `json:"questions"`
	Answers   []answerResponse   `json:"answers"`
}

type publicUserResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type activityResponse struct {
	Kind      string `json:"kind"`
	Target    string `json:"target"`
	CreatedAt string `json:"createdAt"`
}

// --- Questions ---

type questionRequest struct {
	Title string `json:"title" validate:"required,max=255"`
	Body  string `json:"body"  validate:"required"`
}

type questionPatchRequest struct {
	Title *string `json:"title" validate:"omitempty,max=255"`
	Body  *string `json:"body"`
}

type questionResponse struct {
	ID              int64  `json:"id"`
	Slug            string `json:"slug"`
	Title           string `json:"title"`
	Body            string `json:"body"`
	Author          string `json:"author"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
	AnswersCount    int    `json:"answersCount"`
	UserHasAnswered bool   `json:"userHasAnswered"`
}

type questionListResponse struct {
	Count      int64              `json:"count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"totalPages"`
	Results    []questionResponse `json:"results"`
}

// --- Answers ---

type answerRequest struct {
	Body string `json:"body" validate:"required"`
}

type answerResponse struct {
	UUID         string `json:"uuid"`
	Body         string `json:"body"`
	Author       string `json:"author"`
	QuestionSlug string `json:"questionSlug"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
	LikesCount   int    `json:"likesCount"`
	UserHasLiked bool   `json:"userHasLiked"`
}

type likeResponse struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"likeCount"`
}
