package service

import (
	"github.com/bgsport/backoffice/internal/models"
	"github.com/bgsport/backoffice/internal/repository"
	"github.com/bgsport/backoffice/internal/settlement"
)

// OrderView 订单及其按流水重算的结算结果
type OrderView struct {
	Order      models.Order      `json:"order"`
	Settlement settlement.Result `json:"settlement"`
}

// OrderChargesInput 订单数量与费用输入
type OrderChargesInput struct {
	ShortQty      int
	LongQty       int
	FreeQty       int
	Qty3XL        int
	Qty4XL        int
	Qty5XL        int
	SizeUpcharge  int64
	ExtraCharge   int64
	DesignDeposit int64
	FactoryCost   int64
}

// 单行数量与金额上限，保证结算乘法不溢出 int64
const (
	maxOrderQty    = 1_000_000
	maxOrderAmount = 1_000_000_000_000
)

func (c OrderChargesInput) validate() error {
	for _, qty := range []int{c.ShortQty, c.LongQty, c.FreeQty, c.Qty3XL, c.Qty4XL, c.Qty5XL} {
		if qty < 0 || qty > maxOrderQty {
			return ErrOrderInvalid
		}
	}
	for _, amount := range []int64{c.SizeUpcharge, c.ExtraCharge, c.DesignDeposit, c.FactoryCost} {
		if amount < 0 || amount > maxOrderAmount {
			return ErrOrderInvalid
		}
	}
	return nil
}

// applyTo 写入订单；大码加价 <= 0 时使用默认值
func (c OrderChargesInput) applyTo(order *models.Order, defaultUpcharge int64) {
	upcharge := c.SizeUpcharge
	if upcharge <= 0 {
		upcharge = defaultUpcharge
	}
	order.ShortQty = c.ShortQty
	order.LongQty = c.LongQty
	order.FreeQty = c.FreeQty
	order.Qty3XL = c.Qty3XL
	order.Qty4XL = c.Qty4XL
	order.Qty5XL = c.Qty5XL
	order.SizeUpcharge = models.NewMoney(upcharge)
	order.ExtraCharge = models.NewMoney(c.ExtraCharge)
	order.DesignDeposit = models.NewMoney(c.DesignDeposit)
	order.FactoryCost = models.NewMoney(c.FactoryCost)
}

// settlementInput 基于订单快照构造结算输入
func settlementInput(order *models.Order, customerPaid, factoryPaid int64) settlement.Input {
	return settlement.Input{
		FabricShortPrice:      order.FabricShortPrice.Int64(),
		FabricLongPrice:       order.FabricLongPrice.Int64(),
		ShortQty:              order.ShortQty,
		LongQty:               order.LongQty,
		FreeQty:               order.FreeQty,
		Qty3XL:                order.Qty3XL,
		Qty4XL:                order.Qty4XL,
		Qty5XL:                order.Qty5XL,
		SizeUpcharge:          order.SizeUpcharge.Int64(),
		ExtraCharge:           order.ExtraCharge.Int64(),
		DesignDeposit:         order.DesignDeposit.Int64(),
		FactoryCost:           order.FactoryCost.Int64(),
		CustomerPaymentsTotal: customerPaid,
		FactoryPaymentsTotal:  factoryPaid,
	}
}

// computeOrderSettlement 以流水为准重算；客户流水为空时回退到旧版 initial_deposit
func computeOrderSettlement(order *models.Order, customer, factory repository.LedgerTotal) settlement.Result {
	received := settlement.CustomerReceived(customer.Total, int(customer.Entries), order.InitialDeposit.Int64())
	return settlement.Compute(settlementInput(order, received, factory.Total))
}

// applySettlementCache 把结算结果写回订单缓存列（仅用于 SQL 过滤与汇总）
func applySettlementCache(order *models.Order, r settlement.Result) {
	order.SizeUpcharge = models.NewMoney(r.SizeUpcharge)
	order.GrossTotal = models.NewMoney(r.GrossTotal)
	order.NetTotal = models.NewMoney(r.NetTotal)
	order.Balance = models.NewMoney(r.CustomerBalance)
	order.FactoryBalance = models.NewMoney(r.FactoryBalance)
	order.InitialDeposit = models.NewMoney(r.CustomerPaid)
}

// buildOrderViews 批量统计流水并重算列表中每个订单
func buildOrderViews(paymentRepo repository.PaymentRepository, orders []models.Order) ([]OrderView, error) {
	views := make([]OrderView, 0, len(orders))
	if len(orders) == 0 {
		return views, nil
	}
	ids := make([]uint, 0, len(orders))
	for _, order := range orders {
		ids = append(ids, order.ID)
	}
	customerTotals, err := paymentRepo.SumCustomerByOrderIDs(ids)
	if err != nil {
		return nil, err
	}
	factoryTotals, err := paymentRepo.SumFactoryByOrderIDs(ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		order := orders[i]
		views = append(views, OrderView{
			Order:      order,
			Settlement: computeOrderSettlement(&order, customerTotals[order.ID], factoryTotals[order.ID]),
		})
	}
	return views, nil
}
