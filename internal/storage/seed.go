package storage

import "github.com/xauspro/truth-or-dare/internal/game"

// seedTasks 内置题库，首次启动时写入数据库
var seedTasks = map[poolKey][]string{
	{game.CategoryAcquaintance, game.TaskTruth}: {
		"你做过最疯狂的事情是什么？",
		"你最害怕的东西是什么？",
		"你童年最尴尬的一件事是什么？",
		"如果可以重来一次，你最想改变哪件事？",
		"你最近一次撒谎是什么时候，为什么？",
		"你手机里最不想被别人看到的是什么？",
	},
	{game.CategoryAcquaintance, game.TaskDare}: {
		"模仿一种动物叫声，坚持十秒。",
		"用左手给在场任意一个人写一句祝福。",
		"发一条只有表情符号的朋友圈。",
		"闭着眼睛原地转三圈再单脚站立五秒。",
		"用歌声说出你接下来要讲的话，持续一分钟。",
	},
	{game.CategoryFlirt, game.TaskTruth}: {
		"你的初恋是什么样的人？",
		"你心目中理想的约会是什么样的？",
		"在场的人里你第一眼注意到了谁？",
		"你会因为什么瞬间对一个人心动？",
		"你收到过最浪漫的表白是什么？",
	},
	{game.CategoryFlirt, game.TaskDare}: {
		"对在场任意一个人说一句土味情话。",
		"深情注视对方的眼睛十秒钟不许笑。",
		"给你的联系人列表里第五个人发一句\"想你了\"。",
		"用三句话夸奖坐在你对面的人。",
	},
	{game.CategorySexy, game.TaskTruth}: {
		"你觉得自己身上最有魅力的部位是哪里？",
		"你做过最大胆的梦是什么？",
		"你最想和谁跳一支慢舞？",
	},
	{game.CategorySexy, game.TaskDare}: {
		"对着镜头抛一个媚眼。",
		"模仿一段偶像剧的深情告白。",
		"跳一段十秒钟的即兴舞蹈。",
	},
	{game.CategoryExtreme, game.TaskTruth}: {
		"你人生中最后悔的决定是什么？",
		"你有没有暗恋过在场的人？",
		"你做过最出格的事情是什么？",
	},
	{game.CategoryExtreme, game.TaskDare}: {
		"让对方翻看你的相册最近十张照片。",
		"给通讯录里随机一个人打电话唱生日歌。",
		"接下来三轮说话必须用疑问句。",
	},
	{game.CategoryFunny, game.TaskTruth}: {
		"你笑场最严重的一次是什么场合？",
		"你给别人起过最损的外号是什么？",
		"你最近一次出糗是什么时候？",
	},
	{game.CategoryFunny, game.TaskDare}: {
		"用方言播报一段天气预报。",
		"表演一段慢动作摔倒。",
		"学一段广告里的台词，越浮夸越好。",
		"保持微笑三十秒，期间其他人可以逗你。",
	},
}
