package i18n

var catalog = map[string]map[string]string{
	LocaleLao: {
		"error.bad_request":               "ຂໍ້ມູນບໍ່ຖືກຕ້ອງ",
		"error.not_found":                 "ບໍ່ພົບຂໍ້ມູນ",
		"error.internal":                  "ລະບົບຂັດຂ້ອງ ກະລຸນາລອງໃໝ່",
		"error.too_many_requests":         "ຮ້ອງຂໍຖີ່ເກີນໄປ ກະລຸນາລໍຖ້າ",
		"error.rate_limited":              "ຮ້ອງຂໍຖີ່ເກີນໄປ ກະລຸນາລໍຖ້າ %d ວິນາທີ",
		"error.rate_limit_unavailable":    "ບໍລິການຈຳກັດການຮ້ອງຂໍບໍ່ພ້ອມໃຊ້ງານ",
		"error.fabric_not_found":          "ບໍ່ພົບຜ້າ",
		"error.fabric_invalid":            "ຂໍ້ມູນຜ້າບໍ່ຖືກຕ້ອງ",
		"error.fabric_name_required":      "ກະລຸນາໃສ່ຊື່ຜ້າ",
		"error.user_not_found":            "ບໍ່ພົບຜູ້ໃຊ້",
		"error.user_invalid":              "ຂໍ້ມູນຜູ້ໃຊ້ບໍ່ຖືກຕ້ອງ",
		"error.user_role_invalid":         "ບົດບາດຜູ້ໃຊ້ບໍ່ຖືກຕ້ອງ",
		"error.order_not_found":           "ບໍ່ພົບອໍເດີ",
		"error.order_invalid":             "ຂໍ້ມູນອໍເດີບໍ່ຖືກຕ້ອງ",
		"error.order_code_required":       "ກະລຸນາໃສ່ລະຫັດອໍເດີ",
		"error.order_code_exists":         "ລະຫັດອໍເດີນີ້ມີແລ້ວ",
		"error.order_date_required":       "ກະລຸນາໃສ່ວັນທີອໍເດີ",
		"error.order_fabric_required":     "ກະລຸນາເລືອກຜ້າ",
		"error.order_admin_required":      "ກະລຸນາເລືອກແອັດມິນຂາຍ",
		"error.order_graphic_required":    "ກະລຸນາເລືອກກຣາຟິກ",
		"error.fabric_in_use":             "ຜ້ານີ້ຖືກໃຊ້ໃນອໍເດີແລ້ວ ບໍ່ສາມາດລຶບໄດ້",
		"error.order_already_completed":   "ອໍເດີນີ້ປິດແລ້ວ",
		"error.order_customer_balance":    "ລູກຄ້າຍັງຄ້າງຊຳລະ ບໍ່ສາມາດປິດອໍເດີໄດ້",
		"error.order_factory_balance":     "ຍັງຄ້າງຈ່າຍໂຮງງານ ບໍ່ສາມາດປິດອໍເດີໄດ້",
		"error.payment_amount_invalid":    "ຈຳນວນເງິນຕ້ອງຫຼາຍກວ່າ 0",
		"error.payment_amount_exceeds":    "ຈຳນວນເງິນເກີນຍອດຄ້າງຊຳລະ",
		"error.payment_date_invalid":      "ວັນທີຊຳລະບໍ່ຖືກຕ້ອງ",
		"error.date_invalid":              "ຮູບແບບວັນທີບໍ່ຖືກຕ້ອງ",
		"error.import_file_required":      "ກະລຸນາເລືອກໄຟລ໌ນຳເຂົ້າ",
		"error.import_file_invalid":       "ອ່ານໄຟລ໌ນຳເຂົ້າບໍ່ໄດ້",
		"error.import_file_too_large":     "ໄຟລ໌ໃຫຍ່ເກີນກຳນົດ",
		"error.import_too_many_rows":      "ຈຳນວນແຖວເກີນກຳນົດ",
		"error.import_mode_invalid":       "ໂໝດນຳເຂົ້າບໍ່ຖືກຕ້ອງ",
		"error.report_type_invalid":       "ປະເພດລາຍງານບໍ່ຖືກຕ້ອງ",
		"error.report_period_invalid":     "ໄລຍະເວລາລາຍງານບໍ່ຖືກຕ້ອງ",
		"error.dashboard_range_invalid":   "ຊ່ວງເວລາບໍ່ຖືກຕ້ອງ",
		"error.bulk_delete_empty":         "ກະລຸນາເລືອກອໍເດີທີ່ຈະລຶບ",
		"error.report_prefix_invalid":     "ລະຫັດນຳໜ້າອໍເດີບໍ່ຖືກຕ້ອງ",
		"import.reason.missing_date":      "ບໍ່ມີວັນທີອໍເດີ",
		"import.reason.missing_code":      "ບໍ່ມີລະຫັດອໍເດີ",
		"import.reason.fabric_not_found":  "ບໍ່ພົບຜ້າ: %s",
		"import.reason.admin_not_found":   "ບໍ່ພົບແອັດມິນ: %s",
		"import.reason.graphic_not_found": "ບໍ່ພົບກຣາຟິກ: %s",
		"import.reason.exists":            "ລະຫັດອໍເດີມີແລ້ວ (ຂ້າມ)",
		"import.reason.number_invalid":    "ຕົວເລກບໍ່ຖືກຕ້ອງ ຫຼື ເກີນຂອບເຂດ: %s",
		"import.reason.charges_invalid":   "ຈຳນວນ ຫຼື ລາຄາບໍ່ຖືກຕ້ອງ",
		"import.reason.completed":         "ອໍເດີປິດແລ້ວ ບໍ່ສາມາດອັບເດດ (ຂ້າມ)",
		"order.closed":                    "ປິດອໍເດີສຳເລັດ",
		"payment.recorded":                "ບັນທຶກການຊຳລະສຳເລັດ",
	},
	LocaleEnglish: {
		"error.bad_request":               "Invalid request",
		"error.not_found":                 "Not found",
		"error.internal":                  "Internal error, please try again",
		"error.too_many_requests":         "Too many requests, please wait",
		"error.rate_limited":              "Too many requests, please retry in %d seconds",
		"error.rate_limit_unavailable":    "Rate limiter unavailable",
		"error.fabric_not_found":          "Fabric not found",
		"error.fabric_invalid":            "Invalid fabric data",
		"error.fabric_name_required":      "Fabric name is required",
		"error.user_not_found":            "User not found",
		"error.user_invalid":              "Invalid user data",
		"error.user_role_invalid":         "Invalid user role",
		"error.order_not_found":           "Order not found",
		"error.order_invalid":             "Invalid order data",
		"error.order_code_required":       "Order code is required",
		"error.order_code_exists":         "Order code already exists",
		"error.order_date_required":       "Order date is required",
		"error.order_fabric_required":     "Please select a fabric",
		"error.order_admin_required":      "Please select a sale admin",
		"error.order_graphic_required":    "Please select a graphic designer",
		"error.fabric_in_use":             "Fabric is used by existing orders and cannot be deleted",
		"error.order_already_completed":   "Order is already completed",
		"error.order_customer_balance":    "Customer balance outstanding, cannot close order",
		"error.order_factory_balance":     "Factory balance outstanding, cannot close order",
		"error.payment_amount_invalid":    "Amount must be greater than zero",
		"error.payment_amount_exceeds":    "Amount exceeds outstanding balance",
		"error.payment_date_invalid":      "Invalid payment date",
		"error.date_invalid":              "Invalid date format",
		"error.import_file_required":      "Import file is required",
		"error.import_file_invalid":       "Cannot read import file",
		"error.import_file_too_large":     "Import file is too large",
		"error.import_too_many_rows":      "Too many rows in import file",
		"error.import_mode_invalid":       "Invalid import mode",
		"error.report_type_invalid":       "Invalid report type",
		"error.report_period_invalid":     "Invalid report period",
		"error.dashboard_range_invalid":   "Invalid date range",
		"error.bulk_delete_empty":         "No orders selected",
		"error.report_prefix_invalid":     "Invalid order code prefix",
		"import.reason.missing_date":      "Missing order date",
		"import.reason.missing_code":      "Missing order code",
		"import.reason.fabric_not_found":  "Fabric not found: %s",
		"import.reason.admin_not_found":   "Admin not found: %s",
		"import.reason.graphic_not_found": "Graphic not found: %s",
		"import.reason.exists":            "Order code already exists (skipped)",
		"import.reason.number_invalid":    "Number invalid or out of range: %s",
		"import.reason.charges_invalid":   "Invalid quantities or charges",
		"import.reason.completed":         "Order is already completed (skipped)",
		"order.closed":                    "Order closed",
		"payment.recorded":                "Payment recorded",
	},
}
