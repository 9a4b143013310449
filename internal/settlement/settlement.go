// Package settlement 订单结算计算器。
//
// 所有金额均为整数基普，函数无副作用且从不返回错误：负的中间结果被截断为 0。
package settlement

import (
	"errors"
	"time"
)

// DefaultSizeUpcharge 大码每件默认加价
const DefaultSizeUpcharge int64 = 20000

var (
	// ErrAmountNotPositive 付款金额必须大于 0
	ErrAmountNotPositive = errors.New("amount must be greater than zero")
	// ErrAmountExceedsOutstanding 付款金额超过未结余额
	ErrAmountExceedsOutstanding = errors.New("amount exceeds outstanding balance")
	// ErrCustomerOutstanding 客户仍有欠款
	ErrCustomerOutstanding = errors.New("customer balance outstanding")
	// ErrFactoryOutstanding 仍欠工厂款项
	ErrFactoryOutstanding = errors.New("factory balance outstanding")
)

// Input 结算输入（面料价格为订单快照）
type Input struct {
	FabricShortPrice      int64 `json:"fabric_short_price"`
	FabricLongPrice       int64 `json:"fabric_long_price"`
	ShortQty              int   `json:"short_qty"`
	LongQty               int   `json:"long_qty"`
	FreeQty               int   `json:"free_qty"`
	Qty3XL                int   `json:"qty_3xl"`
	Qty4XL                int   `json:"qty_4xl"`
	Qty5XL                int   `json:"qty_5xl"`
	SizeUpcharge          int64 `json:"size_upcharge"`
	ExtraCharge           int64 `json:"extra_charge"`
	DesignDeposit         int64 `json:"design_deposit"`
	FactoryCost           int64 `json:"factory_cost"`
	CustomerPaymentsTotal int64 `json:"customer_payments_total"`
	FactoryPaymentsTotal  int64 `json:"factory_payments_total"`
}

// Result 结算派生结果
type Result struct {
	BillableQty     int   `json:"billable_qty"`
	PlusSizeQty     int   `json:"plus_size_qty"`
	ProducedQty     int   `json:"produced_qty"`
	SizeUpcharge    int64 `json:"size_upcharge"`
	ShirtsTotal     int64 `json:"shirts_total"`
	PlusSizeTotal   int64 `json:"plus_size_total"`
	GrossTotal      int64 `json:"gross_total"`
	NetTotal        int64 `json:"net_total"`
	FactoryCost     int64 `json:"factory_cost"`
	CustomerPaid    int64 `json:"customer_paid"`
	CustomerBalance int64 `json:"customer_balance"`
	FactoryPaid     int64 `json:"factory_paid"`
	FactoryBalance  int64 `json:"factory_balance"`
	Profit          int64 `json:"profit"`
}

// Compute 计算订单全部派生金额
func Compute(in Input) Result {
	shortQty := clampQty(in.ShortQty)
	longQty := clampQty(in.LongQty)
	freeQty := clampQty(in.FreeQty)
	plusSizeQty := clampQty(in.Qty3XL) + clampQty(in.Qty4XL) + clampQty(in.Qty5XL)

	upcharge := in.SizeUpcharge
	if upcharge <= 0 {
		upcharge = DefaultSizeUpcharge
	}

	shirtsTotal := int64(shortQty)*clamp(in.FabricShortPrice) + int64(longQty)*clamp(in.FabricLongPrice)
	plusSizeTotal := int64(plusSizeQty) * upcharge
	grossTotal := shirtsTotal + plusSizeTotal + clamp(in.ExtraCharge)
	netTotal := clamp(grossTotal - clamp(in.DesignDeposit))

	factoryCost := clamp(in.FactoryCost)
	customerPaid := clamp(in.CustomerPaymentsTotal)
	factoryPaid := clamp(in.FactoryPaymentsTotal)

	return Result{
		BillableQty:     shortQty + longQty,
		PlusSizeQty:     plusSizeQty,
		ProducedQty:     shortQty + longQty + freeQty,
		SizeUpcharge:    upcharge,
		ShirtsTotal:     shirtsTotal,
		PlusSizeTotal:   plusSizeTotal,
		GrossTotal:      grossTotal,
		NetTotal:        netTotal,
		FactoryCost:     factoryCost,
		CustomerPaid:    customerPaid,
		CustomerBalance: clamp(netTotal - customerPaid),
		FactoryPaid:     factoryPaid,
		FactoryBalance:  clamp(factoryCost - factoryPaid),
		Profit:          netTotal - factoryCost,
	}
}

// CustomerReceived 客户已收金额：有流水时以流水合计为准，否则回退到旧版 initial_deposit
func CustomerReceived(ledgerTotal int64, ledgerRows int, initialDeposit int64) int64 {
	if ledgerRows > 0 {
		return clamp(ledgerTotal)
	}
	return clamp(initialDeposit)
}

// ValidatePayment 校验一笔付款：金额需大于 0 且不超过当前未结余额
func ValidatePayment(amount, outstanding int64) error {
	if amount <= 0 {
		return ErrAmountNotPositive
	}
	if amount > outstanding {
		return ErrAmountExceedsOutstanding
	}
	return nil
}

// CheckClose 校验 in_progress -> completed 的结单条件
func CheckClose(r Result, requireFactorySettled bool) error {
	if r.CustomerBalance != 0 {
		return ErrCustomerOutstanding
	}
	if requireFactorySettled && r.FactoryBalance != 0 {
		return ErrFactoryOutstanding
	}
	return nil
}

// PaidFullAt 余额为 0 时返回付清时间，否则返回 nil（清除旧标记）
func PaidFullAt(balance int64, paidAt time.Time) *time.Time {
	if balance != 0 {
		return nil
	}
	stamp := paidAt
	return &stamp
}

func clamp(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}

func clampQty(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
