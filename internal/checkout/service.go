package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jeansstore/backend/internal/cart"
	"github.com/jeansstore/backend/pkg/cep"
	"github.com/jeansstore/backend/pkg/config"
	pkgerrors "github.com/jeansstore/backend/pkg/errors"
	"github.com/jeansstore/backend/pkg/fakestore"
	"github.com/jeansstore/backend/pkg/metrics"
	"github.com/jeansstore/backend/pkg/types"
	"github.com/jeansstore/backend/pkg/viacep"
)

// Service drives the two-step checkout wizard.
type Service interface {
	Get(ctx context.Context, sessionID string) (*StateDTO, error)
	Lookup(ctx context.Context, sessionID, code string) (*LookupResult, error)
	Update(ctx context.Context, sessionID string, input UpdateInput) (*StateDTO, error)
	Back(ctx context.Context, sessionID string) (*StateDTO, error)
	Finish(ctx context.Context, sessionID string) (*OrderResult, error)
}

// Quote is the price breakdown for the current selections.
type Quote struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	DeliveryFee  decimal.Decimal `json:"delivery_fee"`
	Total        decimal.Decimal `json:"total"`
	DeliveryTime string          `json:"delivery_time"`
}

// StateDTO is the wizard read model returned by the API.
type StateDTO struct {
	Step           int             `json:"step"`
	CEP            string          `json:"cep"`
	Address        *viacep.Address `json:"address,omitempty"`
	Profile        *fakestore.User `json:"profile,omitempty"`
	DeliveryOption DeliveryOption  `json:"delivery_option"`
	PaymentMethod  PaymentMethod   `json:"payment_method"`
	Customer       Customer        `json:"customer"`
	Quote          Quote           `json:"quote"`
}

// LookupResult pairs the advanced wizard state with a notification.
type LookupResult struct {
	State        StateDTO           `json:"state"`
	Notification types.Notification `json:"notification"`
}

// CustomerInput carries buyer detail updates.
type CustomerInput struct {
	Name       *string
	Email      *string
	Phone      *string
	Number     *string
	Complement *string
}

// UpdateInput carries selection updates for the confirmation step.
type UpdateInput struct {
	DeliveryOption *string
	PaymentMethod  *string
	Customer       *CustomerInput
}

// OrderResult is the summary returned when the order is finished.
type OrderResult struct {
	Subtotal           decimal.Decimal    `json:"subtotal"`
	DeliveryFee        decimal.Decimal    `json:"delivery_fee"`
	Total              decimal.Decimal    `json:"total"`
	DeliveryOption     DeliveryOption     `json:"delivery_option"`
	DeliveryLabel      string             `json:"delivery_label"`
	DeliveryTime       string             `json:"delivery_time"`
	PaymentMethod      PaymentMethod      `json:"payment_method"`
	PaymentLabel       string             `json:"payment_label"`
	PaymentDescription string             `json:"payment_description"`
	Address            *viacep.Address    `json:"address"`
	Customer           Customer           `json:"customer"`
	Notification       types.Notification `json:"notification"`
}

type addressResolver interface {
	Resolve(ctx context.Context, code string) (*viacep.Address, error)
}

type profileFetcher interface {
	GetUser(ctx context.Context, id int) (*fakestore.User, error)
}

type cartReader interface {
	Get(ctx context.Context, sessionID string) (*cart.CartDTO, error)
}

type service struct {
	store    Store
	carts    cartReader
	resolver addressResolver
	profiles profileFetcher
	metrics  *metrics.StorefrontMetrics
	cfg      config.CheckoutConfig
	demoUser int
	now      func() time.Time
}

// NewService constructs a checkout service instance.
func NewService(
	store Store,
	carts cartReader,
	resolver addressResolver,
	profiles profileFetcher,
	sfMetrics *metrics.StorefrontMetrics,
	cfg config.CheckoutConfig,
	fsCfg config.FakeStoreConfig,
) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("checkout store required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart reader required")
	}
	if resolver == nil {
		return nil, fmt.Errorf("address resolver required")
	}
	if profiles == nil {
		return nil, fmt.Errorf("profile fetcher required")
	}
	return &service{
		store:    store,
		carts:    carts,
		resolver: resolver,
		profiles: profiles,
		metrics:  sfMetrics,
		cfg:      cfg,
		demoUser: fsCfg.DemoUserID,
		now:      time.Now,
	}, nil
}

// Get returns the current wizard state, creating a fresh one when the
// session has none yet.
func (s *service) Get(ctx context.Context, sessionID string) (*StateDTO, error) {
	state, ok, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load checkout")
	}
	if !ok {
		state = s.defaultState()
	}
	return s.newStateDTO(ctx, sessionID, state)
}

// Lookup resolves the postal code, fetches the demo customer profile, and
// advances the wizard to the confirmation step. Only one lookup may run
// per session at a time.
func (s *service) Lookup(ctx context.Context, sessionID, code string) (*LookupResult, error) {
	if !cep.Valid(code) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "CEP deve ter 8 dígitos")
	}

	allowed, err := s.store.AllowLookup(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup rate limit")
	}
	if !allowed {
		return nil, pkgerrors.New(pkgerrors.CodeRateLimit, "muitas consultas de CEP, tente novamente em instantes")
	}

	locked, err := s.store.TryLockLookup(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "acquire lookup lock")
	}
	if !locked {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "consulta de CEP já em andamento")
	}
	defer func() { _ = s.store.UnlockLookup(ctx, sessionID) }()

	start := s.now()
	address, err := s.resolver.Resolve(ctx, code)
	s.metrics.ObserveLookup("viacep", s.now().Sub(start))
	if err != nil {
		s.metrics.IncLookupFailure("viacep")
		return nil, err
	}
	s.metrics.IncLookupSuccess("viacep")

	start = s.now()
	profile, err := s.profiles.GetUser(ctx, s.demoUser)
	s.metrics.ObserveLookup("fakestore", s.now().Sub(start))
	if err != nil {
		s.metrics.IncLookupFailure("fakestore")
		return nil, err
	}
	s.metrics.IncLookupSuccess("fakestore")

	state, ok, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load checkout")
	}
	if !ok {
		state = s.defaultState()
	}

	state.Step = StepConfirm
	state.CEP = cep.Format(cep.Normalize(code))
	state.Address = address
	state.Profile = profile

	if err := s.store.Save(ctx, sessionID, state); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save checkout")
	}

	dto, err := s.newStateDTO(ctx, sessionID, state)
	if err != nil {
		return nil, err
	}
	return &LookupResult{
		State: *dto,
		Notification: types.Notify(
			"Endereço encontrado!",
			fmt.Sprintf("%s, %s - %s/%s", address.Logradouro, address.Bairro, address.Localidade, address.UF),
		),
	}, nil
}

// Update applies delivery, payment, and customer selections.
func (s *service) Update(ctx context.Context, sessionID string, input UpdateInput) (*StateDTO, error) {
	state, ok, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load checkout")
	}
	if !ok {
		state = s.defaultState()
	}

	if input.DeliveryOption != nil {
		option := DeliveryOption(*input.DeliveryOption)
		if !option.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "opção de entrega inválida")
		}
		state.DeliveryOption = option
	}
	if input.PaymentMethod != nil {
		method := PaymentMethod(*input.PaymentMethod)
		if !method.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "forma de pagamento inválida")
		}
		state.PaymentMethod = method
	}
	if input.Customer != nil {
		applyCustomer(&state.Customer, input.Customer)
	}

	if err := s.store.Save(ctx, sessionID, state); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save checkout")
	}
	return s.newStateDTO(ctx, sessionID, state)
}

// Back returns the wizard to the address step. The resolved address and
// selections are kept so moving forward again is cheap.
func (s *service) Back(ctx context.Context, sessionID string) (*StateDTO, error) {
	state, ok, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load checkout")
	}
	if !ok {
		state = s.defaultState()
	}

	state.Step = StepAddress

	if err := s.store.Save(ctx, sessionID, state); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save checkout")
	}
	return s.newStateDTO(ctx, sessionID, state)
}

// Finish completes the order, resets the wizard, and leaves the cart
// untouched. A wizard that never reached the confirmation step cannot
// be finished, and finishing twice fails the second time.
func (s *service) Finish(ctx context.Context, sessionID string) (*OrderResult, error) {
	state, ok, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load checkout")
	}
	if !ok || state.Step != StepConfirm || state.Address == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "checkout não está pronto para finalização")
	}

	cartDTO, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(cartDTO.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "o carrinho está vazio")
	}

	fee := state.DeliveryOption.Fee()
	result := &OrderResult{
		Subtotal:           cartDTO.Subtotal,
		DeliveryFee:        fee,
		Total:              cartDTO.Subtotal.Add(fee),
		DeliveryOption:     state.DeliveryOption,
		DeliveryLabel:      state.DeliveryOption.DisplayName(),
		DeliveryTime:       state.DeliveryOption.Time(),
		PaymentMethod:      state.PaymentMethod,
		PaymentLabel:       state.PaymentMethod.DisplayName(),
		PaymentDescription: state.PaymentMethod.Description(),
		Address:            state.Address,
		Customer:           state.Customer,
		Notification: types.Notify(
			"Pedido realizado com sucesso!",
			fmt.Sprintf("Seu pedido será entregue em %s", state.DeliveryOption.Time()),
		),
	}

	if err := s.store.Clear(ctx, sessionID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reset checkout")
	}
	s.metrics.IncOrderFinished()

	return result, nil
}

func (s *service) defaultState() *State {
	delivery := DeliveryOption(s.cfg.DefaultDeliveryOption)
	if !delivery.IsValid() {
		delivery = DeliveryStandard
	}
	payment := PaymentMethod(s.cfg.DefaultPaymentMethod)
	if !payment.IsValid() {
		payment = PaymentCredit
	}
	return &State{
		Step:           StepAddress,
		DeliveryOption: delivery,
		PaymentMethod:  payment,
	}
}

func (s *service) newStateDTO(ctx context.Context, sessionID string, state *State) (*StateDTO, error) {
	cartDTO, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	fee := state.DeliveryOption.Fee()
	return &StateDTO{
		Step:           state.Step,
		CEP:            state.CEP,
		Address:        state.Address,
		Profile:        state.Profile,
		DeliveryOption: state.DeliveryOption,
		PaymentMethod:  state.PaymentMethod,
		Customer:       state.Customer,
		Quote: Quote{
			Subtotal:     cartDTO.Subtotal,
			DeliveryFee:  fee,
			Total:        cartDTO.Subtotal.Add(fee),
			DeliveryTime: state.DeliveryOption.Time(),
		},
	}, nil
}

func applyCustomer(customer *Customer, input *CustomerInput) {
	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Email != nil {
		customer.Email = *input.Email
	}
	if input.Phone != nil {
		customer.Phone = *input.Phone
	}
	if input.Number != nil {
		customer.Number = *input.Number
	}
	if input.Complement != nil {
		customer.Complement = *input.Complement
	}
}
