package game

import "strings"

// Category 任务类别标签
type Category string

const (
	CategoryAcquaintance Category = "acquaintance" // 认识你
	CategoryFlirt        Category = "flirt"        // 调情
	CategorySexy         Category = "sexy"         // 两性（18+）
	CategoryExtreme      Category = "extreme"      // 极限挑战（18+）
	CategoryFunny        Category = "funny"        // 搞笑
)

// AllCategories 全部合法类别
var AllCategories = []Category{
	CategoryAcquaintance,
	CategoryFlirt,
	CategorySexy,
	CategoryExtreme,
	CategoryFunny,
}

// CategorySet 类别集合，保持插入顺序、元素唯一
type CategorySet []Category

// DefaultCategories 未选择类别时的默认组合
func DefaultCategories() CategorySet {
	return CategorySet{CategoryAcquaintance, CategoryFlirt}
}

// ParseCategory 解析单个类别标签
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllCategories {
		if c == known {
			return c, true
		}
	}
	return "", false
}

// ParseCategories 解析类别列表，忽略非法标签和重复项。
// 结果为空时返回默认组合。
func ParseCategories(ss []string) CategorySet {
	var set CategorySet
	for _, s := range ss {
		c, ok := ParseCategory(s)
		if !ok {
			continue
		}
		if !set.Contains(c) {
			set = append(set, c)
		}
	}
	if len(set) == 0 {
		return DefaultCategories()
	}
	return set
}

// Strings 序列化为字符串列表（持久化边界使用）
func (s CategorySet) Strings() []string {
	out := make([]string, len(s))
	for i, c := range s {
		out[i] = string(c)
	}
	return out
}

// Contains 是否包含指定类别
func (s CategorySet) Contains(c Category) bool {
	for _, v := range s {
		if v == c {
			return true
		}
	}
	return false
}

// Intersect 求交集，保持接收者的顺序
func (s CategorySet) Intersect(other CategorySet) CategorySet {
	var out CategorySet
	for _, c := range s {
		if other.Contains(c) {
			out = append(out, c)
		}
	}
	return out
}

// orDefault 空集合回落到默认组合
func (s CategorySet) orDefault() CategorySet {
	if len(s) == 0 {
		return DefaultCategories()
	}
	return s
}
