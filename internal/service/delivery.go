package service

import (
	"context"
	"fmt"

	"github.com/mkrishnan-dev/quickbasket/internal/repo"
	"github.com/mkrishnan-dev/quickbasket/internal/util"
)

type DeliveryService struct {
	Vendors *repo.VendorRepo
}

type PincodeResult struct {
	Available bool   `json:"available"`
	Pincode   string `json:"pincode"`
	Message   string `json:"message"`
}

// Check reports whether any approved vendor delivers to the pincode. The
// result carries no state; persisting the choice is the caller's session
// cookie, never a database write.
func (s *DeliveryService) Check(ctx context.Context, pincode string) (*PincodeResult, error) {
	if !util.ValidPincode(pincode) {
		return nil, fmt.Errorf("%w: pincode must be exactly 6 digits", ErrValidation)
	}

	served, err := s.Vendors.PincodeServed(ctx, pincode)
	if err != nil {
		return nil, err
	}

	res := &PincodeResult{Available: served, Pincode: pincode}
	if served {
		res.Message = fmt.Sprintf("Delivery available in %s", pincode)
	} else {
		res.Message = fmt.Sprintf("Sorry, we don't deliver to %s yet", pincode)
	}
	return res, nil
}
