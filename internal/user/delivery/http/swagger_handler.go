package http

// Register godoc
// @Summary Register a new user
// @Description Create a user account and receive a signed token. Role defaults to staff.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body object{name=string,email=string,password=string,role=string} true "User data"
// @Success 201 {object} object{token=string,user=object}
// @Failure 400 {object} object{error=string}
// @Router /auth/register [post]
func (h *UserHandler) RegisterDoc() {}

// Login godoc
// @Summary Login
// @Description Authenticate with email and password and receive a signed token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body object{email=string,password=string} true "Credentials"
// @Success 200 {object} object{token=string,user=object}
// @Failure 401 {object} object{error=string}
// @Router /auth/login [post]
func (h *UserHandler) LoginDoc() {}

// GetProfile godoc
// @Summary Get current user
// @Description Get the profile of the authenticated user
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{id=int,name=string,email=string,role=string}
// @Failure 401 {object} object{error=string}
// @Router /api/users/me [get]
func (h *UserHandler) GetProfileDoc() {}
