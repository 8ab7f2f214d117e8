package devserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/authkeeper/internal/logging"
)

// Body status values.
const (
	statusFailure = 0
	statusSuccess = 1
)

// Messages returned in the envelope.
const (
	MsgLoginOK         = "Login successful"
	MsgInvalidCreds    = "Invalid credentials"
	MsgNotVerified     = "Email is not verified"
	MsgRegisterOK      = "Registration successful. Please verify your email."
	MsgEmailExists     = "Email exists"
	MsgUserNameExists  = "Username exists"
	MsgVerifyOK        = "Email verified"
	MsgInvalidOTP      = "Invalid OTP"
	MsgAccountNotFound = "Account not found"
	MsgBadRequest      = "Invalid request"
	MsgInternal        = "Internal error"
)

type Config struct {
	Secret   []byte
	TokenTTL time.Duration
}

// Server is the in-memory development backend.
type Server struct {
	cfg   Config
	users *userRegistry
	log   logging.Logger
	now   func() time.Time
}

func New(cfg Config, log logging.Logger) *Server {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = time.Hour
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Server{cfg: cfg, users: newUserRegistry(), log: log.With("component", "devserver"), now: time.Now}
}

type envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type loginRequest struct {
	UserName string `json:"userName" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	FullName    string `json:"fullName" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	UserName    string `json:"userName" binding:"required"`
	Password    string `json:"password" binding:"required,min=4"`
}

type verifyRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=6,numeric"`
}

// Handler builds the gin engine serving the /Auth routes.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())
	s.RegisterRoutes(r.Group("/"))
	return r
}

func (s *Server) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/Auth")
	{
		auth.POST("/login", s.login)
		auth.POST("/register", s.register)
		auth.POST("/verify-email", s.verifyEmail)
	}
}

// SeedUser adds an already verified account.
func (s *Server) SeedUser(u User, password string) error {
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	u.Verified = true
	return s.users.add(&u)
}

// PendingOTP returns the code waiting for email, if any.
func (s *Server) PendingOTP(email string) (string, bool) {
	return s.users.pendingOTP(email)
}

func respond(c *gin.Context, status int, msg string, data any) {
	c.JSON(http.StatusOK, envelope{Status: status, Message: msg, Data: data})
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, envelope{Status: statusFailure, Message: MsgBadRequest, Data: err.Error()})
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ctx := c.Request.Context()

	u, err := s.users.authenticate(req.UserName, req.Password)
	if err != nil {
		s.log.Info(ctx, "login rejected", "user", req.UserName)
		respond(c, statusFailure, MsgInvalidCreds, nil)
		return
	}
	if !u.Verified {
		respond(c, statusFailure, MsgNotVerified, nil)
		return
	}

	token, err := issueToken(u, s.cfg.Secret, s.cfg.TokenTTL, s.now())
	if err != nil {
		s.log.Error(ctx, "sign token", "error", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, envelope{Status: statusFailure, Message: MsgInternal})
		return
	}
	s.log.Info(ctx, "login accepted", "user", u.UserName, "request_id", c.GetHeader("X-Request-ID"))
	respond(c, statusSuccess, MsgLoginOK, gin.H{"token": token})
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ctx := c.Request.Context()

	hash, err := hashPassword(req.Password)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, envelope{Status: statusFailure, Message: MsgInternal})
		return
	}
	otp, err := newOTP()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, envelope{Status: statusFailure, Message: MsgInternal})
		return
	}

	u := &User{
		FullName:     req.FullName,
		PhoneNumber:  req.PhoneNumber,
		Email:        req.Email,
		UserName:     req.UserName,
		PasswordHash: hash,
		otp:          otp,
	}
	if err := s.users.add(u); err != nil {
		msg := MsgEmailExists
		if errors.Is(err, ErrUserNameTaken) {
			msg = MsgUserNameExists
		}
		respond(c, statusFailure, msg, nil)
		return
	}

	s.log.Info(ctx, "registered, otp issued", "email", u.Email, "otp", otp)
	respond(c, statusSuccess, MsgRegisterOK, gin.H{"userId": u.ID, "email": u.Email, "isVerified": false})
}

func (s *Server) verifyEmail(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	switch err := s.users.verify(req.Email, req.OTP); {
	case errors.Is(err, ErrUserNotFound):
		respond(c, statusFailure, MsgAccountNotFound, nil)
	case errors.Is(err, ErrBadOTP):
		respond(c, statusFailure, MsgInvalidOTP, gin.H{"isVerified": false})
	case err != nil:
		c.AbortWithStatusJSON(http.StatusInternalServerError, envelope{Status: statusFailure, Message: MsgInternal})
	default:
		respond(c, statusSuccess, MsgVerifyOK, gin.H{"isVerified": true})
	}
}
