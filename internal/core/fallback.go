package core

// Static records returned when generation or serving cannot produce a
// real sample. Callers always receive a fresh copy.

var fallbackSamples = map[Locale]EmailSample{
	LocaleEN: {
		Sender:      "Payroll & Benefits Team",
		SenderEmail: "benefits@staff-rewards-portal.com",
		Subject:     "ACTION REQUIRED: Confirm Your 2026 Supplementary Health Cover Before 5 PM Today",
		Content: "Dear Colleague,\n\n" +
			"Following the Executive Committee's endorsement of the revised Remuneration & Benefits Framework, " +
			"the 2026 Supplementary Health Cover and end-of-year benefits confirmation round is now open.\n\n" +
			"To make sure your entitlements are paid in the current pay cycle and correctly reflected in your " +
			"salary packaging arrangement, every employee must confirm their details through the Benefits Portal " +
			"below no later than 5:00 PM AEST today.\n\n" +
			"Benefits Portal: http://confirm.staff-rewards-portal.com/secure/login\n\n" +
			"Please be aware that confirmations not received by the cut-off will be treated as an opt-out. " +
			"Your supplementary cover will lapse and the end-of-year payment may be held over to the next " +
			"financial year without further notice.\n\n" +
			"We appreciate your prompt attention to this matter.\n\n" +
			"Kind regards,\n\n" +
			"Hannah Whitfield\nSenior Advisor, Payroll & Benefits\nPhone: +61 2 8888 0000 ext. 214\n\n" +
			"------------------------------------------------------------\n" +
			"CONFIDENTIALITY NOTICE: This email and any attachments are confidential and may be legally " +
			"privileged. If you are not the intended recipient, please notify the sender and delete all copies.",
		IsPhishing: true,
		Time:       "Just now",
		Clues: []string{
			"The sender domain 'staff-rewards-portal.com' is not the company's official domain",
			"It combines a high-value lure ('end-of-year payment', 'health cover') with a same-day deadline ('before 5 PM today')",
			"The 'Benefits Portal' link points to an external site (http://confirm.staff-rewards-portal.com/secure/login) rather than an internal system",
		},
	},
	LocaleZH: {
		Sender:      "人力资源共享服务中心",
		SenderEmail: "hr-service@staff-welfare-center.com",
		Subject:     "【紧急】2026年度补充医疗保险及年终福利确认通知",
		Content: "各位同事：\n\n" +
			"根据公司管理委员会决议及本年度薪酬福利政策，2026年度员工补充医疗保险与年终专项福利确认工作现已正式启动。\n\n" +
			"为确保福利款项于本月底前准确发放，并同步计入个人所得税专项扣除，请全体员工务必于今日17:00前通过以下专属福利平台完成信息确认：\n\n" +
			"福利确认平台：http://benefit-confirm.staff-welfare-center.com/login\n\n" +
			"请注意：逾期未完成确认的员工将视为自动放弃本年度补充福利资格，年终奖发放亦可能顺延至下一财年，且无法补办。\n\n" +
			"感谢您的配合与支持。\n\n" +
			"人力资源共享服务中心\n福利专员 王思远\n电话：021-6888 0000 转 312\n\n" +
			"------------------------------------------------------------\n" +
			"CONFIDENTIALITY NOTICE: This email and any attachments are confidential. " +
			"If you are not the intended recipient, please delete all copies and notify the sender.",
		IsPhishing: true,
		Time:       "刚刚",
		Clues: []string{
			"发件域名 'staff-welfare-center.com' 并非公司官方域名",
			"以“年终福利”“补充医疗保险”为诱饵，并设置“今日17:00前”的紧迫时限",
			"所谓福利平台 http://benefit-confirm.staff-welfare-center.com/login 是外部可疑链接，而非内部系统地址",
		},
	},
}

var unavailableSamples = map[Locale]EmailSample{
	LocaleEN: {
		Sender:      "System",
		SenderEmail: "noreply@company.com",
		Subject:     "Email pool not available",
		Content:     "The email pool is not available right now. Please try again later.",
		IsPhishing:  false,
		Time:        "Just now",
		Clues:       []string{},
	},
	LocaleZH: {
		Sender:      "系统通知",
		SenderEmail: "noreply@company.com",
		Subject:     "题库暂不可用",
		Content:     "邮件题库暂时不可用，请稍后再试。",
		IsPhishing:  false,
		Time:        "刚刚",
		Clues:       []string{},
	},
}

// FallbackSample returns the hardcoded, pre-validated sample for locale
func FallbackSample(locale Locale) EmailSample {
	s, ok := fallbackSamples[locale]
	if !ok {
		s = fallbackSamples[LocaleEN]
	}
	return s.Clone()
}

// UnavailableSample returns the placeholder served when a pool is empty
func UnavailableSample(locale Locale) EmailSample {
	s, ok := unavailableSamples[locale]
	if !ok {
		s = unavailableSamples[LocaleEN]
	}
	return s.Clone()
}
