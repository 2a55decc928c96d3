// Package auditbook contains the Go binding of the AuditBook contract.
//
// The layout follows abigen's output (Caller/Transactor split, MetaData,
// ConvertType for tuple results) so it can be swapped for a generated
// binding. Events and deployment are not bound: the client only calls
// into an already deployed contract.
package auditbook

import (
	_ "embed"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

//go:embed AuditBook.abi
var auditBookABI string

// AuditBookMetaData contains all meta data concerning the AuditBook contract.
var AuditBookMetaData = &bind.MetaData{
	ABI: auditBookABI,
}

// AuditBookCompany mirrors the contract struct AuditBook.Company.
type AuditBookCompany struct {
	Name    [32]byte
	State   uint8
	Account common.Address
}

// AuditBookAudit mirrors the contract struct AuditBook.Audit.
type AuditBookAudit struct {
	Id        *big.Int
	Finding   [32]byte
	State     uint8
	Auditor   common.Address
	Auditable common.Address
}

// AuditBook is a binding around the AuditBook contract.
type AuditBook struct {
	AuditBookCaller
	AuditBookTransactor
}

// AuditBookCaller is a read-only binding around the AuditBook contract.
type AuditBookCaller struct {
	contract *bind.BoundContract
}

// AuditBookTransactor is a write-only binding around the AuditBook contract.
type AuditBookTransactor struct {
	contract *bind.BoundContract
}

// NewAuditBook creates a new instance of AuditBook, bound to a specific deployed contract.
func NewAuditBook(address common.Address, backend bind.ContractBackend) (*AuditBook, error) {
	contract, err := bindAuditBook(address, backend, backend, backend)
	if err != nil {
		return nil, err
	}
	return &AuditBook{
		AuditBookCaller:     AuditBookCaller{contract: contract},
		AuditBookTransactor: AuditBookTransactor{contract: contract},
	}, nil
}

// NewAuditBookCaller creates a new read-only instance of AuditBook.
func NewAuditBookCaller(address common.Address, caller bind.ContractCaller) (*AuditBookCaller, error) {
	contract, err := bindAuditBook(address, caller, nil, nil)
	if err != nil {
		return nil, err
	}
	return &AuditBookCaller{contract: contract}, nil
}

// NewAuditBookTransactor creates a new write-only instance of AuditBook.
func NewAuditBookTransactor(address common.Address, transactor bind.ContractTransactor) (*AuditBookTransactor, error) {
	contract, err := bindAuditBook(address, nil, transactor, nil)
	if err != nil {
		return nil, err
	}
	return &AuditBookTransactor{contract: contract}, nil
}

func bindAuditBook(address common.Address, caller bind.ContractCaller, transactor bind.ContractTransactor, filterer bind.ContractFilterer) (*bind.BoundContract, error) {
	parsed, err := AuditBookMetaData.GetAbi()
	if err != nil {
		return nil, err
	}
	return bind.NewBoundContract(address, *parsed, caller, transactor, filterer), nil
}

// Admin is a free data retrieval call binding the contract method admin().
func (_AuditBook *AuditBookCaller) Admin(opts *bind.CallOpts) (common.Address, error) {
	var out []interface{}
	err := _AuditBook.contract.Call(opts, &out, "admin")
	if err != nil {
		return *new(common.Address), err
	}
	out0 := *abi.ConvertType(out[0], new(common.Address)).(*common.Address)
	return out0, err
}

// AdminName is a free data retrieval call binding the contract method adminName().
func (_AuditBook *AuditBookCaller) AdminName(opts *bind.CallOpts) ([32]byte, error) {
	var out []interface{}
	err := _AuditBook.contract.Call(opts, &out, "adminName")
	if err != nil {
		return *new([32]byte), err
	}
	out0 := *abi.ConvertType(out[0], new([32]byte)).(*[32]byte)
	return out0, err
}

// GetAuditCompanies is a free data retrieval call binding the contract method getAuditCompanies().
func (_AuditBook *AuditBookCaller) GetAuditCompanies(opts *bind.CallOpts) ([]AuditBookCompany, error) {
	return _AuditBook.companies(opts, "getAuditCompanies")
}

// GetAuditableCompanies is a free data retrieval call binding the contract method getAuditableCompanies().
func (_AuditBook *AuditBookCaller) GetAuditableCompanies(opts *bind.CallOpts) ([]AuditBookCompany, error) {
	return _AuditBook.companies(opts, "getAuditableCompanies")
}

// GetApprovedAuditableCompanies is a free data retrieval call binding the contract method getApprovedAuditableCompanies().
func (_AuditBook *AuditBookCaller) GetApprovedAuditableCompanies(opts *bind.CallOpts) ([]AuditBookCompany, error) {
	return _AuditBook.companies(opts, "getApprovedAuditableCompanies")
}

func (_AuditBook *AuditBookCaller) companies(opts *bind.CallOpts, method string) ([]AuditBookCompany, error) {
	var out []interface{}
	err := _AuditBook.contract.Call(opts, &out, method)
	if err != nil {
		return *new([]AuditBookCompany), err
	}
	out0 := *abi.ConvertType(out[0], new([]AuditBookCompany)).(*[]AuditBookCompany)
	return out0, err
}

// GetAuditCompanyRegister is a free data retrieval call binding the contract method getAuditCompanyRegister().
func (_AuditBook *AuditBookCaller) GetAuditCompanyRegister(opts *bind.CallOpts) (AuditBookCompany, error) {
	return _AuditBook.company(opts, "getAuditCompanyRegister")
}

// GetAuditableCompanyRegister is a free data retrieval call binding the contract method getAuditableCompanyRegister().
func (_AuditBook *AuditBookCaller) GetAuditableCompanyRegister(opts *bind.CallOpts) (AuditBookCompany, error) {
	return _AuditBook.company(opts, "getAuditableCompanyRegister")
}

func (_AuditBook *AuditBookCaller) company(opts *bind.CallOpts, method string) (AuditBookCompany, error) {
	var out []interface{}
	err := _AuditBook.contract.Call(opts, &out, method)
	if err != nil {
		return *new(AuditBookCompany), err
	}
	out0 := *abi.ConvertType(out[0], new(AuditBookCompany)).(*AuditBookCompany)
	return out0, err
}

// GetAuditableCompanySubmittedAudits is a free data retrieval call binding the contract method getAuditableCompanySubmittedAudits().
func (_AuditBook *AuditBookCaller) GetAuditableCompanySubmittedAudits(opts *bind.CallOpts) ([]AuditBookAudit, error) {
	var out []interface{}
	err := _AuditBook.contract.Call(opts, &out, "getAuditableCompanySubmittedAudits")
	if err != nil {
		return *new([]AuditBookAudit), err
	}
	out0 := *abi.ConvertType(out[0], new([]AuditBookAudit)).(*[]AuditBookAudit)
	return out0, err
}

// IsRegisteredAsAuditCompany is a free data retrieval call binding the contract method IsRegisteredAsAuditCompany().
func (_AuditBook *AuditBookCaller) IsRegisteredAsAuditCompany(opts *bind.CallOpts) (bool, error) {
	return _AuditBook.flag(opts, "IsRegisteredAsAuditCompany")
}

// IsRegisteredAsAuditableCompany is a free data retrieval call binding the contract method IsRegisteredAsAuditableCompany().
func (_AuditBook *AuditBookCaller) IsRegisteredAsAuditableCompany(opts *bind.CallOpts) (bool, error) {
	return _AuditBook.flag(opts, "IsRegisteredAsAuditableCompany")
}

func (_AuditBook *AuditBookCaller) flag(opts *bind.CallOpts, method string) (bool, error) {
	var out []interface{}
	err := _AuditBook.contract.Call(opts, &out, method)
	if err != nil {
		return *new(bool), err
	}
	out0 := *abi.ConvertType(out[0], new(bool)).(*bool)
	return out0, err
}

// SetAdminName is a paid mutator transaction binding the contract method setAdminName(bytes32 _name).
func (_AuditBook *AuditBookTransactor) SetAdminName(opts *bind.TransactOpts, _name [32]byte) (*types.Transaction, error) {
	return _AuditBook.contract.Transact(opts, "setAdminName", _name)
}

// ApproveAuditCompany is a paid mutator transaction binding the contract method ApproveAuditCompany(address _account).
func (_AuditBook *AuditBookTransactor) ApproveAuditCompany(opts *bind.TransactOpts, _account common.Address) (*types.Transaction, error) {
	return _AuditBook.contract.Transact(opts, "ApproveAuditCompany", _account)
}

// RejectAuditCompany is a paid mutator transaction binding the contract method RejectAuditCompany(address _account, string _reason).
func (_AuditBook *AuditBookTransactor) RejectAuditCompany(opts *bind.TransactOpts, _account common.Address, _reason string) (*types.Transaction, error) {
	return _AuditBook.contract.Transact(opts, "RejectAuditCompany", _account, _reason)
}

// ApproveAuditableCompany is a paid mutator transaction binding the contract method ApproveAuditableCompany(address _account).
func (_AuditBook *AuditBookTransactor) ApproveAuditableCompany(opts *bind.TransactOpts, _account common.Address) (*types.Transaction, error) {
	return _AuditBook.contract.Transact(opts, "ApproveAuditableCompany", _account)
}

// RejectAuditableCompany is a paid mutator transaction binding the contract method RejectAuditableCompany(address _account, string _reason).
func (_AuditBook *AuditBookTransactor) RejectAuditableCompany(opts *bind.TransactOpts, _account common.Address, _reason string) (*types.Transaction, error) {
	return _AuditBook.contract.Transact(opts, "RejectAuditableCompany", _account, _reason)
}

// AuditCompanyRequestAdmision is a paid mutator transaction binding the contract method AuditCompanyRequestAdmision(bytes32 _name).
func (_AuditBook *AuditBookTransactor) AuditCompanyRequestAdmision(opts *bind.TransactOpts, _name [32]byte) (*types.Transaction, error) {
	return _AuditBook.contract.Transact(opts, "AuditCompanyRequestAdmision", _name)
}

// AuditableCompanyRequestAdmision is a paid mutator transaction binding the contract method AuditableCompanyRequestAdmision(bytes32 _name).
func (_AuditBook *AuditBookTransactor) AuditableCompanyRequestAdmision(opts *bind.TransactOpts, _name [32]byte) (*types.Transaction, error) {
	return _AuditBook.contract.Transact(opts, "AuditableCompanyRequestAdmision", _name)
}

// SubmitAudit is a paid mutator transaction binding the contract method SubmitAudit(address _auditableCompany, bytes32 _finding).
func (_AuditBook *AuditBookTransactor) SubmitAudit(opts *bind.TransactOpts, _auditableCompany common.Address, _finding [32]byte) (*types.Transaction, error) {
	return _AuditBook.contract.Transact(opts, "SubmitAudit", _auditableCompany, _finding)
}

// AuditableCompanyApproveSubmittedAudit is a paid mutator transaction binding the contract method AuditableCompanyApproveSubmittedAudit(uint256 _auditId).
func (_AuditBook *AuditBookTransactor) AuditableCompanyApproveSubmittedAudit(opts *bind.TransactOpts, _auditId *big.Int) (*types.Transaction, error) {
	return _AuditBook.contract.Transact(opts, "AuditableCompanyApproveSubmittedAudit", _auditId)
}

// AuditableCompanyRejectSubmittedAudit is a paid mutator transaction binding the contract method AuditableCompanyRejectSubmittedAudit(uint256 _auditId).
func (_AuditBook *AuditBookTransactor) AuditableCompanyRejectSubmittedAudit(opts *bind.TransactOpts, _auditId *big.Int) (*types.Transaction, error) {
	return _AuditBook.contract.Transact(opts, "AuditableCompanyRejectSubmittedAudit", _auditId)
}
