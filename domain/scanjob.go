package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessCreateScanJob = "email scan job created successfully"
	MessageSuccessGetScanJobs   = "email scan jobs retrieved successfully"
	MessageSuccessGetScanJob    = "email scan job retrieved successfully"
	MessageSuccessCancelScanJob = "email scan job cancelled successfully"

	MessageFailedCreateScanJob = "failed to create email scan job"
	MessageFailedGetScanJobs   = "failed to retrieve email scan jobs"
	MessageFailedGetScanJob    = "failed to retrieve email scan job"
	MessageFailedCancelScanJob = "failed to cancel email scan job"

	ErrScanJobNotFound      = errors.New("email scan job not found")
	ErrScanJobNotCancelable = errors.New("only pending jobs can be cancelled")
	ErrScanJobAlreadyActive = errors.New("an email scan job is already running")
	ErrInvalidDateRange     = errors.New("date_from must be before date_to")
)

type (
	CreateScanJobRequest struct {
		EmailAddress string `json:"email_address" validate:"required,email"`
		DateFrom     string `json:"date_from" validate:"required"`
		DateTo       string `json:"date_to" validate:"required"`
	}

	ScanJobResponse struct {
		ID            string     `json:"id"`
		EmailAddress  string     `json:"email_address"`
		DateFrom      time.Time  `json:"date_from"`
		DateTo        time.Time  `json:"date_to"`
		Status        string     `json:"status"`
		EmailsScanned int        `json:"emails_scanned"`
		InvoicesFound int        `json:"invoices_found"`
		ErrorMessage  string     `json:"error_message,omitempty"`
		CompletedAt   *time.Time `json:"completed_at,omitempty"`
		CreatedAt     time.Time  `json:"created_at"`
	}
)
