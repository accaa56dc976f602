package service

import "job-marketplace-api/internal/apperr"

var (
	ErrCompanyNotFound    = apperr.NotFound("company not found", nil)
	ErrJobNotFound        = apperr.NotFound("job not found", nil)
	ErrJobNotActive       = apperr.NotFound("job not found or inactive", nil)
	ErrClientNotFound     = apperr.NotFound("client not found", nil)
	ErrFreelancerNotFound = apperr.NotFound("freelancer not found", nil)
	ErrProjectNotFound    = apperr.NotFound("project not found", nil)
	ErrProjectNotBiddable = apperr.NotFound("project not found or not open for bidding", nil)
	ErrBidNotFound        = apperr.NotFound("bid not found", nil)

	ErrApplicationAlreadyExists = apperr.Conflict("you have already applied for this job", nil)
	ErrBidAlreadyExists         = apperr.Conflict("you have already submitted a bid for this project", nil)
	ErrFreelancerAlreadyExists  = apperr.Conflict("freelancer profile already exists for this user", nil)
	ErrProjectNotOpen           = apperr.Conflict("project is not open", nil)
	ErrBidNotSubmitted          = apperr.Conflict("bid has already been decided", nil)
	ErrProjectNotClosable       = apperr.Conflict("only open projects can be closed", nil)
	ErrIllegalProjectTransition = apperr.Conflict("illegal project status transition", nil)

	ErrInvalidJobType        = apperr.InvalidArgument("invalid job type", nil)
	ErrInvalidJobStatus      = apperr.InvalidArgument("invalid job status", nil)
	ErrInvalidSalary         = apperr.InvalidArgument("salary must not be negative", nil)
	ErrInvalidProjectStatus  = apperr.InvalidArgument("invalid project status", nil)
	ErrInvalidSkillLevel     = apperr.InvalidArgument("invalid skill level", nil)
	ErrInvalidBudget         = apperr.InvalidArgument("budget must be between 1 and 1000000", nil)
	ErrInvalidBidAmount      = apperr.InvalidArgument("bid amount must be positive", nil)
	ErrInvalidDeliveryDays   = apperr.InvalidArgument("delivery days must be between 1 and 365", nil)
	ErrInvalidHourlyRate     = apperr.InvalidArgument("hourly rate must be between 1 and 1000", nil)
	ErrInvalidMaxHourlyRate  = apperr.InvalidArgument("max hourly rate must not be negative", nil)
	ErrInvalidPagination     = apperr.InvalidArgument("limit must be between 0 and 100 and offset must not be negative", nil)
	ErrInvalidStoredValue    = apperr.InvalidArgument("value rejected by storage", nil)
	ErrDeadlineRequired      = apperr.InvalidArgument("deadline is required", nil)
)
