package conversation

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Params are the interview parameters supplied by the candidate.
type Params struct {
	CompanyName string `json:"companyName" yaml:"company_name"`
	JobRole     string `json:"jobRole" yaml:"job_role"`
	CompanyURL  string `json:"companyUrl" yaml:"company_url"`
}

// Validate checks that every field is present and that CompanyURL is an
// absolute http(s) URL.
func (p Params) Validate() error {
	var errs []error
	if strings.TrimSpace(p.CompanyName) == "" {
		errs = append(errs, errors.New("company name is required"))
	}
	if strings.TrimSpace(p.JobRole) == "" {
		errs = append(errs, errors.New("job role is required"))
	}
	if strings.TrimSpace(p.CompanyURL) == "" {
		errs = append(errs, errors.New("company URL is required"))
	} else if u, err := url.Parse(strings.TrimSpace(p.CompanyURL)); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("company URL %q must be an http(s) address", p.CompanyURL))
	}
	return errors.Join(errs...)
}
