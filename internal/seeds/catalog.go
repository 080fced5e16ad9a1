package seeds

import (
	"fmt"
	"os"

	"github.com/mikey/phish-trainer/internal/core"
	"gopkg.in/yaml.v3"
)

var builtinZH = []core.ScenarioSeed{
	{ID: 1, Type: core.SeedPhishing, Hint: "冒充IT运维：员工账号在境外异常登录，被安全策略拦截，要求在限期内通过链接重新验证身份"},
	{ID: 2, Type: core.SeedPhishing, Hint: "冒充IT运维：企业云盘存储配额即将到期，需点击链接扩容或迁移数据"},
	{ID: 3, Type: core.SeedPhishing, Hint: "伪造CFO办公室：紧急要求完成一笔跨境美元电汇（声称涉及保密并购项目代号'Phoenix'）"},
	{ID: 4, Type: core.SeedPhishing, Hint: "伪造法务合规部：声称公司正配合监管机构的反洗钱专项审查，要求员工在限期内登录提交个人交易流水"},
	{ID: 5, Type: core.SeedPhishing, Hint: "伪造供应链管理部：声称某批海运提单因HS编码错误被海关扣押，要求紧急下载并签署更正文件"},
	{ID: 6, Type: core.SeedPhishing, Hint: "伪造云服务商：账户因异常API调用产生高额费用告警，要求立即登录控制台核实并冻结资源"},
	{ID: 7, Type: core.SeedPhishing, Hint: "假冒HR部门：年度体检报告出现异常指标，要求员工登录健康管理平台进行复查预约"},
	{ID: 8, Type: core.SeedPhishing, Hint: "假冒薪酬委员会：公司推行股权激励计划，要求在限期内登录专属平台确认授予份额"},
	{ID: 9, Type: core.SeedPhishing, Hint: "伪造外部客户：声称竞标书有紧急修订附件需下载查看，附件链接指向可疑域名"},
	{ID: 10, Type: core.SeedPhishing, Hint: "冒充行政部：办公楼门禁系统升级，要求全员重新上传人脸照片至指定平台完成注册"},
	{ID: 11, Type: core.SeedNormal, Hint: "正常IT通知：本周六凌晨进行ERP系统例行维护，届时系统将短暂不可用"},
	{ID: 12, Type: core.SeedNormal, Hint: "正常行政通知：下月全员消防演习的时间、集合地点和注意事项"},
	{ID: 13, Type: core.SeedNormal, Hint: "正常HR通知：公司年会报名截止提醒及节目征集"},
	{ID: 14, Type: core.SeedNormal, Hint: "正常财务通知：Q1差旅报销截止日期提醒及新版报销流程说明"},
	{ID: 15, Type: core.SeedPhishing, Hint: "伪造IT安全团队：检测到员工笔记本安装了未授权软件，要求在48小时内登录资产管理平台进行自查申报"},
}

var builtinEN = []core.ScenarioSeed{
	{ID: 1, Type: core.SeedPhishing, Hint: "Impersonate the Australian Taxation Office asking staff to confirm tax return details"},
	{ID: 2, Type: core.SeedPhishing, Hint: "Fake supermarket supplier portal notice about an invoice discrepancy"},
	{ID: 3, Type: core.SeedPhishing, Hint: "Spoofed major bank security alert asking the reader to verify their identity via a link"},
	{ID: 4, Type: core.SeedPhishing, Hint: "Fake Australia Post failed delivery notice asking for a redelivery fee"},
	{ID: 5, Type: core.SeedPhishing, Hint: "IT operations asking staff to re-verify their Microsoft 365 session to avoid an account lock"},
	{ID: 6, Type: core.SeedPhishing, Hint: "Fake e-signature request for an urgent confidential document from an executive"},
	{ID: 7, Type: core.SeedPhishing, Hint: "HR announcing changes to the Employee Benefits Plan that must be confirmed through a link"},
	{ID: 8, Type: core.SeedPhishing, Hint: "Office 365 password expiry notice demanding an update within 24 hours"},
	{ID: 9, Type: core.SeedNormal, Hint: "Office relocation announcement with the new address and moving schedule"},
	{ID: 10, Type: core.SeedNormal, Hint: "Upcoming quarterly town hall with time, venue and agenda"},
	{ID: 11, Type: core.SeedNormal, Hint: "Advance notice of a brief network outage during weekend switch upgrades"},
	{ID: 12, Type: core.SeedNormal, Hint: "Public holiday arrangements for Australia Day"},
}

// Catalog holds the scenario seeds for each locale
type Catalog struct {
	seeds map[core.Locale][]core.ScenarioSeed
}

// Builtin returns the catalog shipped with the binary
func Builtin() *Catalog {
	return &Catalog{seeds: map[core.Locale][]core.ScenarioSeed{
		core.LocaleZH: builtinZH,
		core.LocaleEN: builtinEN,
	}}
}

// Seeds returns a copy of the seeds for locale
func (c *Catalog) Seeds(locale core.Locale) []core.ScenarioSeed {
	return append([]core.ScenarioSeed(nil), c.seeds[locale]...)
}

// fileCatalog is the on-disk YAML layout, keyed by locale code
type fileCatalog map[string][]core.ScenarioSeed

// LoadFile reads a YAML catalog. Locales missing from the file keep the
// built-in seeds.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var raw fileCatalog
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	catalog := Builtin()
	for code, list := range raw {
		locale, err := core.ParseLocale(code)
		if err != nil {
			return nil, err
		}
		if err := validate(list); err != nil {
			return nil, fmt.Errorf("locale %s: %w", locale, err)
		}
		catalog.seeds[locale] = list
	}
	return catalog, nil
}

func validate(list []core.ScenarioSeed) error {
	if len(list) == 0 {
		return fmt.Errorf("seed list is empty")
	}
	ids := make(map[int]struct{}, len(list))
	for i, s := range list {
		if !s.Type.Valid() {
			return fmt.Errorf("seed %d: unknown type %q", i, s.Type)
		}
		if s.Hint == "" {
			return fmt.Errorf("seed %d: hint is empty", i)
		}
		if _, dup := ids[s.ID]; dup {
			return fmt.Errorf("seed %d: duplicate id %d", i, s.ID)
		}
		ids[s.ID] = struct{}{}
	}
	return nil
}
