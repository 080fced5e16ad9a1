package core

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const seededPolicyEN = `You are an enterprise cybersecurity awareness training engine.
Write one extremely realistic workplace email for the scenario supplied by the user.

[Writing rules]
1. The body must be 150 to 300 words.
2. Use natural Australian business English with the jargon of the department involved.
3. Include: a greeting that changes every time ("Hi all", "Dear Team", "To all staff", ...),
   several paragraphs of plausible context, and a realistic signature block
   (full name, title, department, phone extension) followed by a confidentiality footer.
4. A phishing email MUST contain a call to action pointing at a lookalike URL whose domain
   is spoofed but believable. A legitimate email must not contain suspicious links.
5. Never reuse a sender name, sender domain, subject wording, or signatory from earlier emails.

[Output] Return ONLY one JSON object, no markdown and no commentary:
{
  "sender": "display name",
  "senderEmail": "address",
  "subject": "subject line",
  "content": "body text, use \n between paragraphs",
  "isPhishing": true or false,
  "time": "e.g. 09:12 AM",
  "clues": ["2 to 4 concrete red flags quoting the exact suspicious text"] (empty array when isPhishing is false)
}`

const seededPolicyZH = `你是一个企业级网络安全意识培训引擎。
请根据用户给出的具体场景，撰写一封高度逼真的职场邮件。

【写作要求】
1. 正文长度必须在 150 至 300 字之间。
2. 使用规范的中文商务语言，并带有相关部门的行业术语。
3. 必须包含：每次都不同的称呼（“各位同事”“Dear Team”“XX部全体同仁”等）、
   多段合理详实的背景说明、真实感的落款（姓名、职务、部门、分机号），以及英文保密声明页脚。
4. 钓鱼邮件必须嵌入带有行动号召的可疑链接，域名需伪造但看似可信；正常邮件不得包含可疑链接。
5. 发件人名称、邮箱域名、主题措辞、落款人姓名与职务不得与以往任何邮件重复。

【输出】只输出一个 JSON 对象，不要 markdown，不要任何其他文字：
{
  "sender": "显示名",
  "senderEmail": "邮箱地址",
  "subject": "邮件主题",
  "content": "邮件正文，段落之间使用 \n",
  "isPhishing": true 或 false,
  "time": "如 上午 09:12",
  "clues": ["2 至 4 条具体线索，引用原文中的可疑内容"]（isPhishing 为 false 时返回空数组）
}`

const livePolicyEN = `You are an enterprise cybersecurity awareness training engine.
Each time you are called, randomly write EITHER a sophisticated workplace phishing email OR an
ordinary legitimate business email.

[Diversity] Every call must use a different sender ("Group Finance", "APAC HR Business Partners",
"IT Service Desk", "Vendor Onboarding", "Cloud Cost Governance", ...), a different pretext and a
different subject wording. Pick one concrete angle from:
1. IT and security: risky overseas sign-in, device refresh audit, shared drive permission expiry (phishing)
2. Finance, tax and legal: rejected invoice, queried expense claim, tax reconciliation, fake compliance investigation (phishing)
3. HR and payroll: salary restructure, bonus system migration, health check follow-up, disciplinary notice (phishing)
4. External partners: customs document request, cloud billing failure, RFP addendum download (phishing)
5. Ordinary company news: system go-live, fire drill, routine business update (legitimate)

[Writing rules]
1. The body must be 150 to 300 words of Australian business English.
2. Include a greeting, detailed context, a phishing URL when applicable, a signature block
   (title, department, phone) and a confidentiality footer.

[Output] Return ONLY one JSON object with the keys sender, senderEmail, subject, content
(use \n for paragraph breaks), isPhishing (boolean), time (e.g. "10:32 AM") and clues
(2 to 4 red flags when isPhishing is true, otherwise an empty array).`

const livePolicyZH = `你是一个企业级网络安全意识培训引擎。
每次调用时，随机撰写一封高水平的职场钓鱼邮件，或一封普通的正常商务邮件。

【多样性】每次的发件人（“集团财务中心”“亚太区 HRBP”“IT 服务台”“供应商协同平台”“云资产管理委员会”等）、
借口和主题措辞都必须不同。从以下方向中任选一个具体切入点：
1. IT 与安全：境外异常登录、设备更新资产盘点、云盘权限到期清理（钓鱼）
2. 财务、税务与法务：发票退回重开、报销异常说明、年度汇算确认、伪造合规调查（钓鱼）
3. 人事与薪酬：薪资结构调整、年终奖系统迁移、体检异常复查、违纪处分通知（钓鱼）
4. 外部合作方：海关单据补充、云服务账单扣款失败、招标补充材料下载（钓鱼）
5. 正常公司事务：新系统上线、消防演习、日常业务通知（正常）

【写作要求】
1. 正文 150 至 300 字，使用规范的中文商务语言。
2. 包含称呼、详细背景、（钓鱼邮件中的）可疑链接、落款（职务、部门、电话）以及保密声明。

【输出】只输出一个 JSON 对象，键为 sender、senderEmail、subject、content（段落用 \n 分隔）、
isPhishing（布尔值）、time（如 “上午 10:32”）和 clues（钓鱼邮件给出 2 至 4 条线索，否则为空数组）。`

// PromptBuilder assembles the policy and per-call instruction for a request
type PromptBuilder struct {
	liveTemperature  float32
	batchTemperature float32
	token            func() string
}

// NewPromptBuilder creates a prompt builder with the given sampling temperatures
func NewPromptBuilder(liveTemperature, batchTemperature float32) *PromptBuilder {
	return &PromptBuilder{
		liveTemperature:  liveTemperature,
		batchTemperature: batchTemperature,
		token:            FreshnessToken,
	}
}

// FreshnessToken returns a per-call value that defeats backend response caching
func FreshnessToken() string {
	return fmt.Sprintf("%d_%s", time.Now().UnixMilli(), uuid.NewString())
}

// Build returns the prompt for req
func (b *PromptBuilder) Build(req GenerationRequest) *Prompt {
	token := b.token()

	if req.Seed == nil {
		return &Prompt{
			System:      livePolicy(req.Locale),
			User:        liveInstruction(req.Locale, token),
			Temperature: b.liveTemperature,
		}
	}

	return &Prompt{
		System:      seededPolicy(req.Locale),
		User:        seededInstruction(req.Locale, req.Seed, token),
		Temperature: b.batchTemperature,
	}
}

func seededPolicy(locale Locale) string {
	if locale == LocaleZH {
		return seededPolicyZH
	}
	return seededPolicyEN
}

func livePolicy(locale Locale) string {
	if locale == LocaleZH {
		return livePolicyZH
	}
	return livePolicyEN
}

func seededInstruction(locale Locale, seed *ScenarioSeed, token string) string {
	if locale == LocaleZH {
		kind := "正常邮件 (isPhishing=false)"
		if seed.Type.IsPhishing() {
			kind = "钓鱼邮件 (isPhishing=true)"
		}
		return fmt.Sprintf("请基于以下场景生成一封邮件，严格按 JSON 格式输出。\n场景：%s\n邮件类型：%s\n随机种子：%s",
			seed.Hint, kind, token)
	}

	kind := "Legitimate (isPhishing=false)"
	if seed.Type.IsPhishing() {
		kind = "Phishing (isPhishing=true)"
	}
	return fmt.Sprintf("Generate one email for the scenario below and output strictly as JSON.\nScenario: %s\nEmail type: %s\nRandom seed: %s",
		seed.Hint, kind, token)
}

func liveInstruction(locale Locale, token string) string {
	if locale == LocaleZH {
		return "请从一个全新的角度生成一封邮件，严格按 JSON 格式输出。随机种子：" + token
	}
	return "Generate a brand-new email from a completely fresh angle. Output strictly as JSON. Random seed: " + token
}
