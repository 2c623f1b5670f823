package services

import (
	"database/sql"

	"golang.org/x/crypto/bcrypt"

	intconfig "fjelldrift/internal/config"
	"fjelldrift/internal/domain"
	"fjelldrift/internal/domain/models"
	"fjelldrift/internal/repositories"
	"fjelldrift/internal/utils"
)

type CustomerService struct {
	CustomerRepo repositories.CustomerRepo
	DB           *sql.DB
	RequestID    string
}

func (s CustomerService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s CustomerService) customers() repositories.CustomerRepo {
	if s.CustomerRepo.DB != nil {
		return s.CustomerRepo
	}
	return repositories.CustomerRepo{DB: s.db()}
}

func (s CustomerService) Get(id string) (models.Customer, error) {
	c, err := s.customers().GetByID(id)
	if err != nil {
		if repositories.IsNoRows(err) {
			return models.Customer{}, domain.NotFoundError{Resource: "customer", Err: err}
		}
		return models.Customer{}, domain.InternalError{Err: err}
	}
	return c, nil
}

func (s CustomerService) List() ([]models.Customer, error) {
	out, err := s.customers().List()
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

func (s CustomerService) AnnualSubscribers() ([]models.Customer, error) {
	out, err := s.customers().AnnualSubscribers()
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

func (s CustomerService) Update(id string, upd models.CustomerUpdate) error {
	if upd.Subscription != nil && *upd.Subscription != "" &&
		*upd.Subscription != models.SubscriptionAnnual && *upd.Subscription != models.SubscriptionWeekly {
		return domain.ValidationError{Field: "subscription", Msg: "unknown subscription type"}
	}
	if upd.Latitude != nil && (*upd.Latitude < -90 || *upd.Latitude > 90) {
		return domain.ValidationError{Field: "latitude", Msg: "out of range"}
	}
	if upd.Longitude != nil && (*upd.Longitude < -180 || *upd.Longitude > 180) {
		return domain.ValidationError{Field: "longitude", Msg: "out of range"}
	}
	if err := s.customers().Update(id, upd); err != nil {
		if repositories.IsNoRows(err) {
			return domain.NotFoundError{Resource: "customer", Err: err}
		}
		return domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "customers", "update", "customer "+id+" updated")
	return nil
}

// SetPassword hashes and stores a new login password for the cabin.
func (s CustomerService) SetPassword(id, password string) error {
	if len(password) < 6 {
		return domain.ValidationError{Field: "password", Msg: "must be at least 6 characters"}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if err := s.customers().SetPasswordHash(id, string(hash)); err != nil {
		if repositories.IsNoRows(err) {
			return domain.NotFoundError{Resource: "customer", Err: err}
		}
		return domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "customers", "password", "password changed for "+id)
	return nil
}

// CheckPassword verifies a login attempt against the stored hash.
func (s CustomerService) CheckPassword(id, password string) (models.Customer, error) {
	c, err := s.Get(id)
	if err != nil {
		return models.Customer{}, err
	}
	if c.PasswordHash == "" {
		return models.Customer{}, domain.ValidationError{Field: "password", Msg: "login not enabled for this cabin"}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)); err != nil {
		return models.Customer{}, domain.ValidationError{Field: "password", Msg: "wrong id or password"}
	}
	return c, nil
}
